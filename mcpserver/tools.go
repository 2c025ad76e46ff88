package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rabwill/fieldops/core/dispatch"
	"github.com/rabwill/fieldops/core/model"
)

const defaultMaxResults = 50

// ListAssignmentsInput filters the intake query.
type ListAssignmentsInput struct {
	Priority    string `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High"`
	Region      string `json:"region,omitempty"`
	Team        string `json:"team,omitempty"`
	MaxHoursOld *int   `json:"maxHoursOld,omitempty" validate:"omitempty,min=1,max=168"`
	MaxResults  *int   `json:"maxResults,omitempty" validate:"omitempty,min=1,max=100"`
}

// ListAssignmentsOutput carries the intake result.
type ListAssignmentsOutput struct {
	View        string           `json:"view"`
	Assignments []AssignmentView `json:"assignments"`
}

func (s *Server) listNewAssignments(ctx context.Context, _ *mcp.CallToolRequest, in ListAssignmentsInput) (*mcp.CallToolResult, ListAssignmentsOutput, error) {
	if err := s.checkInput(in); err != nil {
		return nil, ListAssignmentsOutput{}, err
	}
	data, err := s.svc.ListNewAssignments(ctx, dispatch.IntakeFilter{
		Priority:    model.Priority(in.Priority),
		Region:      in.Region,
		Team:        in.Team,
		MaxHoursOld: in.MaxHoursOld,
	})
	if err != nil {
		return nil, ListAssignmentsOutput{}, err
	}
	limit := defaultMaxResults
	if in.MaxResults != nil {
		limit = *in.MaxResults
	}
	if len(data) > limit {
		data = data[:limit]
	}
	out := ListAssignmentsOutput{View: "list", Assignments: assignmentViews(data)}
	return textResult("Suggested next step: list available technicians and create a dispatch plan."), out, nil
}

// MapAssignmentsInput selects which assignments to pin.
type MapAssignmentsInput struct {
	AssignmentIDs []string `json:"assignmentIds,omitempty"`
}

func (s *Server) showAssignmentsOnMap(ctx context.Context, _ *mcp.CallToolRequest, in MapAssignmentsInput) (*mcp.CallToolResult, ListAssignmentsOutput, error) {
	var (
		data []model.Assignment
		err  error
	)
	if len(in.AssignmentIDs) > 0 {
		data, err = s.svc.AssignmentsByIDs(ctx, in.AssignmentIDs)
	} else {
		// An explicit window keeps the intake fallback out of the map view.
		window := dispatch.DefaultMaxHoursOld
		data, err = s.svc.ListNewAssignments(ctx, dispatch.IntakeFilter{MaxHoursOld: &window})
	}
	if err != nil {
		return nil, ListAssignmentsOutput{}, err
	}
	out := ListAssignmentsOutput{View: "map", Assignments: assignmentViews(data)}
	return textResult("Suggested next step: list available technicians and create a dispatch plan."), out, nil
}

// TechniciansInput filters the technician lookup.
type TechniciansInput struct {
	Region string `json:"region,omitempty"`
}

// TechniciansOutput carries the lookup result.
type TechniciansOutput struct {
	Technicians []TechnicianView `json:"technicians"`
}

func (s *Server) getAvailableTechnicians(ctx context.Context, _ *mcp.CallToolRequest, in TechniciansInput) (*mcp.CallToolResult, TechniciansOutput, error) {
	data, err := s.svc.AvailableTechnicians(ctx, in.Region)
	if err != nil {
		return nil, TechniciansOutput{}, err
	}
	out := TechniciansOutput{Technicians: technicianViews(data)}
	return textResult("Suggested next step: create a dispatch plan for assignments."), out, nil
}

// PlanItemInput is one caller-proposed pairing.
type PlanItemInput struct {
	AssignmentID string  `json:"assignmentId" validate:"required"`
	TechnicianID string  `json:"technicianId" validate:"required"`
	Reason       string  `json:"reason,omitempty"`
	ETAMinutes   int     `json:"etaMinutes" validate:"required,gt=0"`
	SkillMatch   string  `json:"skillMatch,omitempty" validate:"omitempty,oneof=Full Partial"`
	DistanceKm   float64 `json:"distanceKm,omitempty" validate:"omitempty,gte=0"`
}

// CreatePlanInput carries the pairings and optional constraint overrides.
type CreatePlanInput struct {
	PlanItems              []PlanItemInput `json:"planItems" validate:"required,min=1,dive"`
	TechnicianIDs          []string        `json:"technicianIds,omitempty"`
	MaxTravelKm            *float64        `json:"maxTravelKm,omitempty" validate:"omitempty,min=1,max=500"`
	AllowPartialSkillMatch *bool           `json:"allowPartialSkillMatch,omitempty"`
	TravelBufferMinutes    *int            `json:"travelBufferMinutes,omitempty" validate:"omitempty,min=0,max=180"`
}

// CreatePlanOutput is the review-ready plan view.
type CreatePlanOutput struct {
	View              string                   `json:"view"`
	Constraints       model.Constraints        `json:"constraints"`
	PlanItems         []model.PlanItem         `json:"planItems"`
	Assignments       []model.Assignment       `json:"assignments"`
	Technicians       []model.Technician       `json:"technicians"`
	TechnicianOptions []model.TechnicianOption `json:"technicianOptions"`
	Warnings          []string                 `json:"warnings,omitempty"`
}

func (s *Server) createDispatchPlan(ctx context.Context, _ *mcp.CallToolRequest, in CreatePlanInput) (*mcp.CallToolResult, CreatePlanOutput, error) {
	if err := s.checkInput(in); err != nil {
		return nil, CreatePlanOutput{}, err
	}
	items := make([]model.PlanItem, len(in.PlanItems))
	for i, it := range in.PlanItems {
		items[i] = model.PlanItem{
			AssignmentID: it.AssignmentID,
			TechnicianID: it.TechnicianID,
			Reason:       it.Reason,
			ETAMinutes:   it.ETAMinutes,
			SkillMatch:   model.SkillMatch(it.SkillMatch),
			DistanceKm:   it.DistanceKm,
		}
	}
	plan, err := s.svc.CreatePlan(ctx, dispatch.PlanRequest{
		Items:                  items,
		TechnicianIDs:          in.TechnicianIDs,
		MaxTravelKm:            in.MaxTravelKm,
		AllowPartialSkillMatch: in.AllowPartialSkillMatch,
		TravelBufferMinutes:    in.TravelBufferMinutes,
	})
	if err != nil {
		return nil, CreatePlanOutput{}, err
	}
	out := CreatePlanOutput{
		View:              "plan",
		Constraints:       plan.Constraints,
		PlanItems:         plan.Items,
		Assignments:       plan.Assignments,
		Technicians:       plan.Technicians,
		TechnicianOptions: plan.TechnicianOptions,
		Warnings:          plan.Warnings,
	}
	return textResult(fmt.Sprintf("Prepared a plan for %d assignments.", len(plan.Items))), out, nil
}

// CommitRowInput is one reviewed row to finalise.
type CommitRowInput struct {
	AssignmentID string `json:"assignmentId" validate:"required"`
	TechnicianID string `json:"technicianId" validate:"required"`
	ETAMinutes   int    `json:"etaMinutes" validate:"required,gt=0"`
}

// CommitInput carries the reviewed plan rows.
type CommitInput struct {
	Assignments []CommitRowInput `json:"assignments" validate:"required,min=1,dive"`
}

// CommitOutput summarises the commit.
type CommitOutput struct {
	Summary  string                 `json:"summary"`
	Count    int                    `json:"count"`
	BatchID  string                 `json:"batchId"`
	Rows     []model.DispatchRecord `json:"rows"`
	Warnings []string               `json:"warnings,omitempty"`
}

func (s *Server) commitAssignments(ctx context.Context, _ *mcp.CallToolRequest, in CommitInput) (*mcp.CallToolResult, CommitOutput, error) {
	if err := s.checkInput(in); err != nil {
		return nil, CommitOutput{}, err
	}
	rows := make([]dispatch.CommitRow, len(in.Assignments))
	for i, r := range in.Assignments {
		rows[i] = dispatch.CommitRow{
			AssignmentID: r.AssignmentID,
			TechnicianID: r.TechnicianID,
			ETAMinutes:   r.ETAMinutes,
		}
	}
	res, err := s.svc.Commit(ctx, rows)
	if err != nil {
		return nil, CommitOutput{}, err
	}
	out := CommitOutput{
		Summary:  res.Summary,
		Count:    res.Count,
		BatchID:  res.BatchID,
		Rows:     res.Rows,
		Warnings: res.Warnings,
	}
	return textResult(fmt.Sprintf("%d assignments have been confirmed.", res.Count)), out, nil
}
