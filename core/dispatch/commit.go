package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rabwill/fieldops/core/dispatch/audit"
	"github.com/rabwill/fieldops/core/metrics"
	"github.com/rabwill/fieldops/core/model"
)

// CommitRow is one reviewed plan row to finalise.
type CommitRow struct {
	AssignmentID string
	TechnicianID string
	ETAMinutes   int
}

// CommitEvent is published on the event bus after a successful commit.
type CommitEvent struct {
	BatchID string
	Result  model.CommitResult
}

// Commit finalises the reviewed rows into dispatch records. Every record in
// the batch shares the same arrival baseline, captured once at the start of
// the call. Unresolvable references never fail the batch: site and technician
// names fall back to the raw IDs and the result carries a warning per miss.
// When ApplyCommits is configured the batch is persisted atomically; a
// conflict rejects the whole batch.
func (s *Service) Commit(ctx context.Context, rows []CommitRow) (model.CommitResult, error) {
	if len(rows) == 0 {
		return model.CommitResult{}, ErrEmptyRequest
	}
	for _, r := range rows {
		if r.ETAMinutes <= 0 {
			return model.CommitResult{}, fmt.Errorf("etaMinutes must be positive for assignment %s", r.AssignmentID)
		}
	}

	committedAt := s.clock()()

	assignmentIDs := make([]string, 0, len(rows))
	technicianIDs := make([]string, 0, len(rows))
	for _, r := range rows {
		assignmentIDs = append(assignmentIDs, r.AssignmentID)
		technicianIDs = append(technicianIDs, r.TechnicianID)
	}
	known, err := s.assignments.ByIDs(ctx, dedupe(assignmentIDs))
	if err != nil {
		return model.CommitResult{}, fmt.Errorf("resolve assignments: %w", err)
	}
	techs, err := s.technicians.ByIDs(ctx, dedupe(technicianIDs))
	if err != nil {
		return model.CommitResult{}, fmt.Errorf("resolve technicians: %w", err)
	}
	sites := make(map[string]string, len(known))
	for _, a := range known {
		sites[a.ID] = a.Site
	}
	names := make(map[string]string, len(techs))
	for _, t := range techs {
		names[t.ID] = t.Name
	}

	var warnings []string
	seenTech := make(map[string]string, len(rows))
	records := make([]model.DispatchRecord, len(rows))
	for i, r := range rows {
		rec := model.DispatchRecord{
			AssignmentID:                       r.AssignmentID,
			Site:                               r.AssignmentID,
			TechnicianID:                       r.TechnicianID,
			TechnicianName:                     r.TechnicianID,
			ETAMinutes:                         r.ETAMinutes,
			EstimatedTechnicianArrivalDateTime: committedAt.Add(time.Duration(r.ETAMinutes) * time.Minute),
			Status:                             model.StatusDispatched,
		}
		if site, ok := sites[r.AssignmentID]; ok {
			rec.Site = site
		} else {
			warnings = append(warnings, fmt.Sprintf("assignment %s not found", r.AssignmentID))
		}
		if name, ok := names[r.TechnicianID]; ok {
			rec.TechnicianName = name
		} else {
			warnings = append(warnings, fmt.Sprintf("technician %s not found", r.TechnicianID))
		}
		if prev, ok := seenTech[r.TechnicianID]; ok {
			warnings = append(warnings, fmt.Sprintf("technician %s assigned to both %s and %s in one batch", r.TechnicianID, prev, r.AssignmentID))
		} else {
			seenTech[r.TechnicianID] = r.AssignmentID
		}
		records[i] = rec
	}

	applied := false
	if s.cfg.ApplyCommits {
		if err := s.assignments.ApplyDispatch(ctx, records); err != nil {
			return model.CommitResult{}, fmt.Errorf("apply dispatch: %w", err)
		}
		applied = true
	}

	res := model.CommitResult{
		BatchID:     uuid.NewString(),
		Summary:     fmt.Sprintf("%d assignments confirmed", len(records)),
		Count:       len(records),
		Rows:        records,
		CommittedAt: committedAt,
		Warnings:    warnings,
	}
	s.afterCommit(ctx, res, applied)
	return res, nil
}

// afterCommit fans the result out to metrics, audit, notifier and the event
// bus. All of it is best-effort: the commit already succeeded.
func (s *Service) afterCommit(ctx context.Context, res model.CommitResult, applied bool) {
	if err := s.sink.RecordCommit(metrics.CommitEvent{
		BatchID:  res.BatchID,
		Rows:     res.Count,
		Warnings: len(res.Warnings),
		Applied:  applied,
		Time:     res.CommittedAt,
	}); err != nil {
		s.log.Warnf("record commit metrics: %v", err)
	}

	s.mu.Lock()
	store := s.store
	notifier := s.notifier
	bus := s.bus
	s.mu.Unlock()

	if store != nil {
		rec := audit.LogRecord{
			BatchID:   res.BatchID,
			Timestamp: res.CommittedAt,
			Rows:      res.Rows,
			Warnings:  res.Warnings,
		}
		if err := store.Append(ctx, rec); err != nil {
			s.log.Errorf("audit append: %v", err)
		}
	}
	if notifier != nil {
		for _, rec := range res.Rows {
			if err := notifier.PublishDispatch(ctx, rec); err != nil {
				s.log.Errorf("notify technician %s: %v", rec.TechnicianID, err)
			}
		}
	}
	if bus != nil {
		bus.Publish(CommitEvent{BatchID: res.BatchID, Result: res})
	}
	s.log.Infof("committed %d assignments (batch %s)", res.Count, res.BatchID)
}
