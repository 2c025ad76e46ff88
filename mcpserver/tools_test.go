package mcpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rabwill/fieldops/core/dispatch"
	"github.com/rabwill/fieldops/core/model"
	"github.com/rabwill/fieldops/infra/logger"
	"github.com/rabwill/fieldops/infra/store"
)

var toolsNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	assignments := []model.Assignment{
		{
			ID:        "A1",
			Site:      "Harbor Substation",
			Priority:  model.PriorityHigh,
			Status:    model.StatusNew,
			CreatedAt: toolsNow.Add(-2 * time.Hour),
			Region:    "North",
			Team:      "Alpha",
			Location:  model.GeoPoint{Address: "12 Harbor Way", Lat: 47.61, Lng: -122.34},
		},
		{
			ID:        "A2",
			Site:      "Ridge Tower",
			Priority:  model.PriorityLow,
			Status:    model.StatusNew,
			CreatedAt: toolsNow.Add(-3 * time.Hour),
			Region:    "South",
			Team:      "Beta",
		},
	}
	technicians := []model.Technician{
		{ID: "T1", Name: "Ava", Region: "North", Available: true},
		{ID: "T2", Name: "Ben", Region: "South", Available: false},
	}
	svc, err := dispatch.NewService(
		store.NewMemoryAssignments(assignments),
		store.NewMemoryTechnicians(technicians),
		dispatch.Config{},
		logger.NopLogger{},
		nil,
	)
	require.NoError(t, err)
	svc.SetClock(func() time.Time { return toolsNow })
	return New(svc, logger.NopLogger{})
}

func TestListNewAssignmentsTool(t *testing.T) {
	s := newTestServer(t)

	res, out, err := s.listNewAssignments(context.Background(), nil, ListAssignmentsInput{})
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Equal(t, "list", out.View)
	require.Len(t, out.Assignments, 2)
	require.Equal(t, "A1", out.Assignments[0].ID)
	require.Equal(t, "12 Harbor Way", out.Assignments[0].Address)
	require.Equal(t, 47.61, out.Assignments[0].Lat)
}

func TestListNewAssignmentsTool_PriorityFilter(t *testing.T) {
	s := newTestServer(t)

	_, out, err := s.listNewAssignments(context.Background(), nil, ListAssignmentsInput{Priority: "High"})
	require.NoError(t, err)
	require.Len(t, out.Assignments, 1)
	require.Equal(t, "A1", out.Assignments[0].ID)
}

func TestListNewAssignmentsTool_ValidationRejectsBadInput(t *testing.T) {
	s := newTestServer(t)

	_, _, err := s.listNewAssignments(context.Background(), nil, ListAssignmentsInput{Priority: "Urgent"})
	require.Error(t, err)

	bad := 300
	_, _, err = s.listNewAssignments(context.Background(), nil, ListAssignmentsInput{MaxHoursOld: &bad})
	require.Error(t, err)
}

func TestListNewAssignmentsTool_MaxResults(t *testing.T) {
	s := newTestServer(t)

	limit := 1
	_, out, err := s.listNewAssignments(context.Background(), nil, ListAssignmentsInput{MaxResults: &limit})
	require.NoError(t, err)
	require.Len(t, out.Assignments, 1)
}

func TestShowAssignmentsOnMapTool(t *testing.T) {
	s := newTestServer(t)

	_, out, err := s.showAssignmentsOnMap(context.Background(), nil, MapAssignmentsInput{AssignmentIDs: []string{"A2"}})
	require.NoError(t, err)
	require.Equal(t, "map", out.View)
	require.Len(t, out.Assignments, 1)
	require.Equal(t, "A2", out.Assignments[0].ID)

	// Without IDs the map shows the recent pool.
	_, out, err = s.showAssignmentsOnMap(context.Background(), nil, MapAssignmentsInput{})
	require.NoError(t, err)
	require.Len(t, out.Assignments, 2)
}

func TestGetAvailableTechniciansTool(t *testing.T) {
	s := newTestServer(t)

	_, out, err := s.getAvailableTechnicians(context.Background(), nil, TechniciansInput{})
	require.NoError(t, err)
	require.Len(t, out.Technicians, 1)
	require.Equal(t, "Ava", out.Technicians[0].Name)

	_, out, err = s.getAvailableTechnicians(context.Background(), nil, TechniciansInput{Region: "South"})
	require.NoError(t, err)
	require.Empty(t, out.Technicians)
}

func TestCreateDispatchPlanTool(t *testing.T) {
	s := newTestServer(t)

	_, out, err := s.createDispatchPlan(context.Background(), nil, CreatePlanInput{
		PlanItems: []PlanItemInput{
			{AssignmentID: "A1", TechnicianID: "T1", ETAMinutes: 20, Reason: "closest qualified"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "plan", out.View)
	require.Len(t, out.PlanItems, 1)
	require.Equal(t, "Ava", out.PlanItems[0].TechnicianName)
	require.Empty(t, out.Warnings)
}

func TestCreateDispatchPlanTool_Validation(t *testing.T) {
	s := newTestServer(t)

	_, _, err := s.createDispatchPlan(context.Background(), nil, CreatePlanInput{})
	require.Error(t, err)

	_, _, err = s.createDispatchPlan(context.Background(), nil, CreatePlanInput{
		PlanItems: []PlanItemInput{{AssignmentID: "A1", TechnicianID: "T1", ETAMinutes: 0}},
	})
	require.Error(t, err)

	_, _, err = s.createDispatchPlan(context.Background(), nil, CreatePlanInput{
		PlanItems: []PlanItemInput{{AssignmentID: "A1", TechnicianID: "T1", ETAMinutes: 20, SkillMatch: "Exact"}},
	})
	require.Error(t, err)
}

func TestCommitAssignmentsTool(t *testing.T) {
	s := newTestServer(t)

	_, out, err := s.commitAssignments(context.Background(), nil, CommitInput{
		Assignments: []CommitRowInput{
			{AssignmentID: "A1", TechnicianID: "T1", ETAMinutes: 20},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, out.Count)
	require.NotEmpty(t, out.BatchID)
	require.Len(t, out.Rows, 1)
	require.Equal(t, "Harbor Substation", out.Rows[0].Site)
	require.Equal(t, toolsNow.Add(20*time.Minute), out.Rows[0].EstimatedTechnicianArrivalDateTime)
}

func TestCommitAssignmentsTool_Validation(t *testing.T) {
	s := newTestServer(t)

	_, _, err := s.commitAssignments(context.Background(), nil, CommitInput{})
	require.Error(t, err)

	_, _, err = s.commitAssignments(context.Background(), nil, CommitInput{
		Assignments: []CommitRowInput{{AssignmentID: "A1", TechnicianID: "", ETAMinutes: 10}},
	})
	require.Error(t, err)
}

func TestHandler_Healthz(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMCPServer_RegistersTools(t *testing.T) {
	s := newTestServer(t)
	require.NotNil(t, s.MCPServer())
}
