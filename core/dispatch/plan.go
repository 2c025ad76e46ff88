package dispatch

import (
	"context"
	"fmt"

	"github.com/rabwill/fieldops/core/metrics"
	"github.com/rabwill/fieldops/core/model"
)

// PlanRequest carries the caller-proposed pairings and optional constraint
// overrides. Pointer fields distinguish "omitted" from a zero value.
type PlanRequest struct {
	Items                  []model.PlanItem
	TechnicianIDs          []string
	MaxTravelKm            *float64
	AllowPartialSkillMatch *bool
	TravelBufferMinutes    *int
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	res := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}

// CreatePlan joins the proposed pairings against the two pools and returns a
// reviewable plan. It validates and enriches; it never chooses or reorders
// pairings, and it persists nothing. Unresolvable technician references fall
// back to echoing the raw ID as the display name and are reported in the
// plan's warnings.
func (s *Service) CreatePlan(ctx context.Context, req PlanRequest) (model.Plan, error) {
	if len(req.Items) == 0 {
		return model.Plan{}, ErrEmptyRequest
	}

	assignmentIDs := make([]string, 0, len(req.Items))
	technicianIDs := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		assignmentIDs = append(assignmentIDs, item.AssignmentID)
		technicianIDs = append(technicianIDs, item.TechnicianID)
	}

	planAssignments, err := s.assignments.ByIDs(ctx, dedupe(assignmentIDs))
	if err != nil {
		return model.Plan{}, fmt.Errorf("resolve assignments: %w", err)
	}
	planTechs, err := s.technicians.ByIDs(ctx, dedupe(technicianIDs))
	if err != nil {
		return model.Plan{}, fmt.Errorf("resolve technicians: %w", err)
	}

	// Override candidates: explicit IDs when supplied, otherwise the
	// technicians already present in the plan.
	options := planTechs
	if len(req.TechnicianIDs) > 0 {
		options, err = s.technicians.ByIDs(ctx, dedupe(req.TechnicianIDs))
		if err != nil {
			return model.Plan{}, fmt.Errorf("resolve technician options: %w", err)
		}
	}

	// Union of plan technicians and override candidates, keyed by ID, for
	// the map/display rendering.
	union := make([]model.Technician, 0, len(planTechs)+len(options))
	seen := make(map[string]struct{}, len(planTechs)+len(options))
	for _, t := range planTechs {
		if _, ok := seen[t.ID]; !ok {
			seen[t.ID] = struct{}{}
			union = append(union, t)
		}
	}
	for _, t := range options {
		if _, ok := seen[t.ID]; !ok {
			seen[t.ID] = struct{}{}
			union = append(union, t)
		}
	}

	techNames := make(map[string]string, len(planTechs))
	for _, t := range planTechs {
		techNames[t.ID] = t.Name
	}
	knownAssignments := make(map[string]struct{}, len(planAssignments))
	for _, a := range planAssignments {
		knownAssignments[a.ID] = struct{}{}
	}

	var warnings []string
	items := make([]model.PlanItem, len(req.Items))
	unresolved := 0
	for i, item := range req.Items {
		enriched := item
		if name, ok := techNames[item.TechnicianID]; ok {
			enriched.TechnicianName = name
		} else {
			enriched.TechnicianName = item.TechnicianID
			unresolved++
			warnings = append(warnings, fmt.Sprintf("technician %s not found", item.TechnicianID))
		}
		if _, ok := knownAssignments[item.AssignmentID]; !ok {
			warnings = append(warnings, fmt.Sprintf("assignment %s not found", item.AssignmentID))
		}
		items[i] = enriched
	}

	plan := model.Plan{
		Constraints: model.Constraints{
			MaxTravelKm:            DefaultMaxTravelKm,
			AllowPartialSkillMatch: true,
			TravelBufferMinutes:    DefaultTravelBufferMinutes,
		},
		Items:             items,
		Assignments:       planAssignments,
		Technicians:       union,
		TechnicianOptions: make([]model.TechnicianOption, 0, len(options)),
		Warnings:          warnings,
	}
	if req.MaxTravelKm != nil {
		plan.Constraints.MaxTravelKm = *req.MaxTravelKm
	}
	if req.AllowPartialSkillMatch != nil {
		plan.Constraints.AllowPartialSkillMatch = *req.AllowPartialSkillMatch
	}
	if req.TravelBufferMinutes != nil {
		plan.Constraints.TravelBufferMinutes = *req.TravelBufferMinutes
	}
	for _, t := range options {
		plan.TechnicianOptions = append(plan.TechnicianOptions, model.TechnicianOption{ID: t.ID, Name: t.Name})
	}

	if err := s.sink.RecordPlan(metrics.PlanEvent{
		Items:      len(items),
		Unresolved: unresolved,
		Time:       s.clock()(),
	}); err != nil {
		s.log.Warnf("record plan metrics: %v", err)
	}
	for _, w := range warnings {
		s.log.Warnf("plan: %s", w)
	}
	return plan, nil
}
