package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/rabwill/fieldops/core/metrics"
	"github.com/rabwill/fieldops/core/model"
)

// IntakeFilter narrows the new-assignment pool. Priority, Region and Team are
// exact matches and ignored when empty. MaxHoursOld is a pointer because its
// presence changes behaviour: when the caller omits it, an empty recency-
// filtered result falls back to a second pass without the recency window.
type IntakeFilter struct {
	Priority    model.Priority
	Region      string
	Team        string
	MaxHoursOld *int
}

func (f IntakeFilter) matches(a model.Assignment) bool {
	if a.Status != model.StatusNew {
		return false
	}
	if f.Priority != "" && a.Priority != f.Priority {
		return false
	}
	if f.Region != "" && a.Region != f.Region {
		return false
	}
	if f.Team != "" && a.Team != f.Team {
		return false
	}
	return true
}

// ListNewAssignments returns the new assignments matching the filter,
// preserving the pool's insertion order. The recency window defaults to the
// last 24 hours. When the window was defaulted and the filtered result is
// empty, the window is dropped and the remaining filters are re-applied;
// an explicitly supplied window is honoured even when it matches nothing.
func (s *Service) ListNewAssignments(ctx context.Context, f IntakeFilter) ([]model.Assignment, error) {
	pool, err := s.assignments.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	hours := DefaultMaxHoursOld
	if f.MaxHoursOld != nil {
		hours = *f.MaxHoursOld
	}
	if hours < 1 || hours > s.cfg.MaxHoursOldCeiling {
		return nil, fmt.Errorf("maxHoursOld %d out of range [1,%d]", hours, s.cfg.MaxHoursOldCeiling)
	}
	now := s.clock()()
	oldest := now.Add(-time.Duration(hours) * time.Hour)

	res := make([]model.Assignment, 0, len(pool))
	for _, a := range pool {
		if f.matches(a) && !a.CreatedAt.Before(oldest) {
			res = append(res, a)
		}
	}

	fallback := false
	if len(res) == 0 && f.MaxHoursOld == nil {
		fallback = true
		for _, a := range pool {
			if f.matches(a) {
				res = append(res, a)
			}
		}
	}

	if err := s.sink.RecordIntake(metrics.IntakeEvent{
		Priority: string(f.Priority),
		Region:   f.Region,
		Team:     f.Team,
		Matched:  len(res),
		Fallback: fallback,
		Time:     now,
	}); err != nil {
		s.log.Warnf("record intake metrics: %v", err)
	}
	s.log.Debugw("assignment intake", map[string]any{
		"matched":  len(res),
		"fallback": fallback,
		"hours":    hours,
	})
	return res, nil
}
