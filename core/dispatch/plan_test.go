package dispatch_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rabwill/fieldops/core/dispatch"
	"github.com/rabwill/fieldops/core/model"
)

func planFixtures() ([]model.Assignment, []model.Technician) {
	assignments := []model.Assignment{
		assignment("A1", model.StatusNew, 0, model.PriorityHigh, "North", "Alpha"),
		assignment("A2", model.StatusNew, 0, model.PriorityMedium, "North", "Alpha"),
	}
	technicians := []model.Technician{
		technician("T1", "Ava", "North", true),
		technician("T2", "Ben", "North", true),
		technician("T3", "Cleo", "South", true),
	}
	return assignments, technicians
}

func TestCreatePlan_EmptyRequest(t *testing.T) {
	svc := newTestService(t, nil, nil, dispatch.Config{})

	_, err := svc.CreatePlan(context.Background(), dispatch.PlanRequest{})
	require.ErrorIs(t, err, dispatch.ErrEmptyRequest)
}

func TestCreatePlan_EnrichesTechnicianNames(t *testing.T) {
	a, techs := planFixtures()
	svc := newTestService(t, a, techs, dispatch.Config{})

	plan, err := svc.CreatePlan(context.Background(), dispatch.PlanRequest{
		Items: []model.PlanItem{
			{AssignmentID: "A1", TechnicianID: "T1"},
			{AssignmentID: "A2", TechnicianID: "T2"},
		},
	})
	require.NoError(t, err)
	require.Len(t, plan.Items, 2)
	require.Equal(t, "Ava", plan.Items[0].TechnicianName)
	require.Equal(t, "Ben", plan.Items[1].TechnicianName)
	require.Empty(t, plan.Warnings)
	require.Len(t, plan.Assignments, 2)
	require.Len(t, plan.Technicians, 2)
}

func TestCreatePlan_UnknownTechnicianFallsBackToRawID(t *testing.T) {
	a, techs := planFixtures()
	svc := newTestService(t, a, techs, dispatch.Config{})

	plan, err := svc.CreatePlan(context.Background(), dispatch.PlanRequest{
		Items: []model.PlanItem{
			{AssignmentID: "A1", TechnicianID: "T-9x"},
		},
	})
	require.NoError(t, err)
	require.Len(t, plan.Items, 1)
	require.Equal(t, "T-9x", plan.Items[0].TechnicianName)
	require.Contains(t, plan.Warnings, "technician T-9x not found")
}

func TestCreatePlan_UnknownAssignmentWarns(t *testing.T) {
	a, techs := planFixtures()
	svc := newTestService(t, a, techs, dispatch.Config{})

	plan, err := svc.CreatePlan(context.Background(), dispatch.PlanRequest{
		Items: []model.PlanItem{
			{AssignmentID: "A-404", TechnicianID: "T1"},
		},
	})
	require.NoError(t, err)
	require.Len(t, plan.Items, 1)
	require.Contains(t, plan.Warnings, "assignment A-404 not found")
	require.Empty(t, plan.Assignments)
}

func TestCreatePlan_DuplicateReferencesCollapse(t *testing.T) {
	a, techs := planFixtures()
	svc := newTestService(t, a, techs, dispatch.Config{})

	plan, err := svc.CreatePlan(context.Background(), dispatch.PlanRequest{
		Items: []model.PlanItem{
			{AssignmentID: "A1", TechnicianID: "T1"},
			{AssignmentID: "A1", TechnicianID: "T1"},
		},
	})
	require.NoError(t, err)
	// Items echo the request, references resolve once.
	require.Len(t, plan.Items, 2)
	require.Len(t, plan.Assignments, 1)
	require.Len(t, plan.Technicians, 1)
}

func TestCreatePlan_ExplicitOptionsReplacePlanTechnicians(t *testing.T) {
	a, techs := planFixtures()
	svc := newTestService(t, a, techs, dispatch.Config{})

	plan, err := svc.CreatePlan(context.Background(), dispatch.PlanRequest{
		Items: []model.PlanItem{
			{AssignmentID: "A1", TechnicianID: "T1"},
		},
		TechnicianIDs: []string{"T3"},
	})
	require.NoError(t, err)
	require.Len(t, plan.TechnicianOptions, 1)
	require.Equal(t, "T3", plan.TechnicianOptions[0].ID)
	require.Equal(t, "Cleo", plan.TechnicianOptions[0].Name)
	// The map pool is the union: plan technicians first, then options.
	require.Len(t, plan.Technicians, 2)
	require.Equal(t, "T1", plan.Technicians[0].ID)
	require.Equal(t, "T3", plan.Technicians[1].ID)
}

func TestCreatePlan_OptionsDefaultToPlanTechnicians(t *testing.T) {
	a, techs := planFixtures()
	svc := newTestService(t, a, techs, dispatch.Config{})

	plan, err := svc.CreatePlan(context.Background(), dispatch.PlanRequest{
		Items: []model.PlanItem{
			{AssignmentID: "A1", TechnicianID: "T2"},
		},
	})
	require.NoError(t, err)
	require.Len(t, plan.TechnicianOptions, 1)
	require.Equal(t, "T2", plan.TechnicianOptions[0].ID)
}

func TestCreatePlan_ConstraintDefaultsAndOverrides(t *testing.T) {
	a, techs := planFixtures()
	svc := newTestService(t, a, techs, dispatch.Config{})

	req := dispatch.PlanRequest{
		Items: []model.PlanItem{{AssignmentID: "A1", TechnicianID: "T1"}},
	}
	plan, err := svc.CreatePlan(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, float64(dispatch.DefaultMaxTravelKm), plan.Constraints.MaxTravelKm)
	require.True(t, plan.Constraints.AllowPartialSkillMatch)
	require.Equal(t, dispatch.DefaultTravelBufferMinutes, plan.Constraints.TravelBufferMinutes)

	km := 10.5
	partial := false
	buffer := 0
	req.MaxTravelKm = &km
	req.AllowPartialSkillMatch = &partial
	req.TravelBufferMinutes = &buffer
	plan, err = svc.CreatePlan(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 10.5, plan.Constraints.MaxTravelKm)
	require.False(t, plan.Constraints.AllowPartialSkillMatch)
	require.Zero(t, plan.Constraints.TravelBufferMinutes)
}

func TestCreatePlan_PreservesItemOrder(t *testing.T) {
	a, techs := planFixtures()
	svc := newTestService(t, a, techs, dispatch.Config{})

	plan, err := svc.CreatePlan(context.Background(), dispatch.PlanRequest{
		Items: []model.PlanItem{
			{AssignmentID: "A2", TechnicianID: "T2"},
			{AssignmentID: "A1", TechnicianID: "T1"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "A2", plan.Items[0].AssignmentID)
	require.Equal(t, "A1", plan.Items[1].AssignmentID)
}
