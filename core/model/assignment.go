package model

import "time"

// Priority classifies how urgent an assignment is.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Rank orders priorities so that High > Medium > Low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether p is one of the known priority values.
func (p Priority) Valid() bool { return p.Rank() > 0 }

// AssignmentStatus tracks an assignment through its dispatch lifecycle.
type AssignmentStatus string

const (
	StatusNew        AssignmentStatus = "New"
	StatusDispatched AssignmentStatus = "Dispatched"
	StatusEnRoute    AssignmentStatus = "EnRoute"
)

// GeoPoint locates a site or a technician.
type GeoPoint struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// Assignment represents a field-service work order awaiting technician dispatch.
type Assignment struct {
	ID                       string           `json:"id"`
	Site                     string           `json:"site"`
	Category                 string           `json:"category"`
	Priority                 Priority         `json:"priority"`
	SLADue                   time.Time        `json:"slaDue"`
	EstimatedStartDateTime   time.Time        `json:"estimatedStartDateTime"`
	EstimatedEndDateTime     time.Time        `json:"estimatedEndDateTime"`
	Description              string           `json:"description"`
	RequiredSkills           []string         `json:"requiredSkills"`
	CustomerName             string           `json:"customerName"`
	CustomerPhone            string           `json:"customerPhone"`
	CustomerProfilePicURL    string           `json:"customerProfilePicUrl"`
	AssetID                  string           `json:"assetId"`
	EstimatedDurationMinutes int              `json:"estimatedDurationMinutes"`
	SiteImageURL             string           `json:"siteImageUrl"`
	Tags                     []string         `json:"tags"`
	Location                 GeoPoint         `json:"location"`
	Status                   AssignmentStatus `json:"status"`
	CreatedAt                time.Time        `json:"createdAt"`
	Region                   string           `json:"region"`
	Team                     string           `json:"team"`

	// Dispatch state. Both fields are unset while Status is New and set once
	// the assignment has been dispatched.
	AssignedTechnicianID               *string    `json:"assignedTechnicianId"`
	EstimatedTechnicianArrivalDateTime *time.Time `json:"estimatedTechnicianArrivalDateTime"`
}
