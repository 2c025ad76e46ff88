// Package store provides repository implementations over the assignment and
// technician pools.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/rabwill/fieldops/core/model"
	"github.com/rabwill/fieldops/core/repository"
)

// MemoryAssignments is an in-memory AssignmentRepository. It preserves the
// insertion order of the seed dataset.
type MemoryAssignments struct {
	mu   sync.RWMutex
	pool []model.Assignment
}

// NewMemoryAssignments seeds the repository with the given pool.
func NewMemoryAssignments(pool []model.Assignment) *MemoryAssignments {
	cp := make([]model.Assignment, len(pool))
	copy(cp, pool)
	return &MemoryAssignments{pool: cp}
}

// ListAll returns a copy of the pool in insertion order.
func (s *MemoryAssignments) ListAll(ctx context.Context) ([]model.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]model.Assignment, len(s.pool))
	copy(res, s.pool)
	return res, nil
}

// ByIDs returns the assignments whose ID is in ids, in pool order.
func (s *MemoryAssignments) ByIDs(ctx context.Context, ids []string) ([]model.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []model.Assignment
	for _, a := range s.pool {
		if _, ok := set[a.ID]; ok {
			res = append(res, a)
		}
	}
	return res, nil
}

// ApplyDispatch marks the referenced assignments as dispatched. The batch is
// checked in full before anything is written: a missing assignment or one
// that already left the New state rejects the whole batch with
// repository.ErrDispatchConflict.
func (s *MemoryAssignments) ApplyDispatch(ctx context.Context, recs []model.DispatchRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := make(map[string]int, len(s.pool))
	for i, a := range s.pool {
		idx[a.ID] = i
	}
	for _, rec := range recs {
		i, ok := idx[rec.AssignmentID]
		if !ok {
			return fmt.Errorf("assignment %s: %w", rec.AssignmentID, repository.ErrDispatchConflict)
		}
		if s.pool[i].Status != model.StatusNew {
			return fmt.Errorf("assignment %s is %s: %w", rec.AssignmentID, s.pool[i].Status, repository.ErrDispatchConflict)
		}
	}
	for _, rec := range recs {
		i := idx[rec.AssignmentID]
		techID := rec.TechnicianID
		arrival := rec.EstimatedTechnicianArrivalDateTime
		s.pool[i].Status = model.StatusDispatched
		s.pool[i].AssignedTechnicianID = &techID
		s.pool[i].EstimatedTechnicianArrivalDateTime = &arrival
	}
	return nil
}

// MemoryTechnicians is an in-memory TechnicianRepository.
type MemoryTechnicians struct {
	mu   sync.RWMutex
	pool []model.Technician
}

// NewMemoryTechnicians seeds the repository with the given pool.
func NewMemoryTechnicians(pool []model.Technician) *MemoryTechnicians {
	cp := make([]model.Technician, len(pool))
	copy(cp, pool)
	return &MemoryTechnicians{pool: cp}
}

// ListAll returns a copy of the pool in insertion order.
func (s *MemoryTechnicians) ListAll(ctx context.Context) ([]model.Technician, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]model.Technician, len(s.pool))
	copy(res, s.pool)
	return res, nil
}

// ByIDs returns the technicians whose ID is in ids, in pool order.
func (s *MemoryTechnicians) ByIDs(ctx context.Context, ids []string) ([]model.Technician, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []model.Technician
	for _, t := range s.pool {
		if _, ok := set[t.ID]; ok {
			res = append(res, t)
		}
	}
	return res, nil
}

var (
	_ repository.AssignmentRepository = (*MemoryAssignments)(nil)
	_ repository.TechnicianRepository = (*MemoryTechnicians)(nil)
)
