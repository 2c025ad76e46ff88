package dispatch_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rabwill/fieldops/core/dispatch"
	"github.com/rabwill/fieldops/core/dispatch/audit"
	"github.com/rabwill/fieldops/infra/logger"
	"github.com/rabwill/fieldops/infra/mqtt"
	"github.com/rabwill/fieldops/infra/store"
)

func TestNewService_RequiresRepositoriesAndLogger(t *testing.T) {
	aRepo := store.NewMemoryAssignments(nil)
	tRepo := store.NewMemoryTechnicians(nil)

	_, err := dispatch.NewService(nil, tRepo, dispatch.Config{}, logger.NopLogger{}, nil)
	require.Error(t, err)
	_, err = dispatch.NewService(aRepo, nil, dispatch.Config{}, logger.NopLogger{}, nil)
	require.Error(t, err)
	_, err = dispatch.NewService(aRepo, tRepo, dispatch.Config{}, nil, nil)
	require.Error(t, err)

	svc, err := dispatch.NewService(aRepo, tRepo, dispatch.Config{}, logger.NopLogger{}, nil)
	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestNewService_RejectsInvalidConfig(t *testing.T) {
	_, err := dispatch.NewService(
		store.NewMemoryAssignments(nil),
		store.NewMemoryTechnicians(nil),
		dispatch.Config{MaxHoursOldCeiling: -1},
		logger.NopLogger{},
		nil,
	)
	require.Error(t, err)
}

func TestCommit_AppendsAuditRecord(t *testing.T) {
	a, techs := commitFixtures()
	svc := newTestService(t, a, techs, dispatch.Config{})

	auditStore, err := audit.NewJSONLStore(filepath.Join(t.TempDir(), "audit.log"))
	require.NoError(t, err)
	svc.SetAuditStore(auditStore)

	res, err := svc.Commit(context.Background(), []dispatch.CommitRow{
		{AssignmentID: "A1", TechnicianID: "T1", ETAMinutes: 15},
	})
	require.NoError(t, err)

	got, err := auditStore.Query(context.Background(), audit.LogQuery{AssignmentID: "A1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, res.BatchID, got[0].BatchID)
	require.True(t, got[0].Timestamp.Equal(res.CommittedAt))
	require.Len(t, got[0].Rows, 1)
}

func TestClose_ClosesNotifier(t *testing.T) {
	a, techs := commitFixtures()
	svc := newTestService(t, a, techs, dispatch.Config{})

	notifier := mqtt.NewMockNotifier()
	svc.SetNotifier(notifier)

	require.NoError(t, svc.Close())
	require.True(t, notifier.Closed())
}

func TestSetClock_IgnoresNil(t *testing.T) {
	a, techs := commitFixtures()
	svc := newTestService(t, a, techs, dispatch.Config{})
	svc.SetClock(nil)

	res, err := svc.Commit(context.Background(), []dispatch.CommitRow{
		{AssignmentID: "A1", TechnicianID: "T1", ETAMinutes: 15},
	})
	require.NoError(t, err)
	require.Equal(t, testNow, res.CommittedAt)
}
