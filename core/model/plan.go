package model

import "time"

// SkillMatch labels how well a technician's skills cover an assignment.
// The value is supplied by the external planner, never computed here.
type SkillMatch string

const (
	SkillMatchFull    SkillMatch = "Full"
	SkillMatchPartial SkillMatch = "Partial"
)

// PlanItem is one proposed assignment-technician pairing inside a plan.
// TechnicianName is resolved during plan assembly; every other field comes
// from the caller.
type PlanItem struct {
	AssignmentID   string     `json:"assignmentId"`
	TechnicianID   string     `json:"technicianId"`
	TechnicianName string     `json:"technicianName,omitempty"`
	Reason         string     `json:"reason,omitempty"`
	ETAMinutes     int        `json:"etaMinutes"`
	SkillMatch     SkillMatch `json:"skillMatch,omitempty"`
	DistanceKm     float64    `json:"distanceKm,omitempty"`
}

// Constraints carries the display constraints attached to a plan.
type Constraints struct {
	MaxTravelKm            float64 `json:"maxTravelKm"`
	AllowPartialSkillMatch bool    `json:"allowPartialSkillMatch"`
	TravelBufferMinutes    int     `json:"travelBufferMinutes"`
}

// TechnicianOption is a dropdown candidate for overriding a pairing.
type TechnicianOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Plan is a reviewable dispatch plan: the caller-proposed pairings enriched
// with the resolved assignment and technician records they reference.
// Warnings name references that could not be resolved against the pools.
type Plan struct {
	Constraints       Constraints        `json:"constraints"`
	Items             []PlanItem         `json:"planItems"`
	Assignments       []Assignment       `json:"assignments"`
	Technicians       []Technician       `json:"technicians"`
	TechnicianOptions []TechnicianOption `json:"technicianOptions"`
	Warnings          []string           `json:"warnings,omitempty"`
}

// DispatchRecord is the durable outcome of committing one plan row.
type DispatchRecord struct {
	AssignmentID                       string           `json:"assignmentId"`
	Site                               string           `json:"site"`
	TechnicianID                       string           `json:"technicianId"`
	TechnicianName                     string           `json:"technicianName"`
	ETAMinutes                         int              `json:"etaMinutes"`
	EstimatedTechnicianArrivalDateTime time.Time        `json:"estimatedTechnicianArrivalDateTime"`
	Status                             AssignmentStatus `json:"status"`
}

// CommitResult summarises one commit batch. All records share the same
// arrival baseline, CommittedAt.
type CommitResult struct {
	BatchID     string           `json:"batchId"`
	Summary     string           `json:"summary"`
	Count       int              `json:"count"`
	Rows        []DispatchRecord `json:"rows"`
	CommittedAt time.Time        `json:"committedAt"`
	Warnings    []string         `json:"warnings,omitempty"`
}
