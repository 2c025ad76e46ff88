// Package repository defines the read interface over the assignment and
// technician pools. Implementations may back it with an in-memory dataset,
// a table store or SQL; the dispatch workflow never depends on the storage
// technology.
package repository

import (
	"context"
	"errors"

	"github.com/rabwill/fieldops/core/model"
)

// ErrDispatchConflict is returned when a commit would dispatch an assignment
// that is no longer in the New state.
var ErrDispatchConflict = errors.New("assignment already dispatched")

// AssignmentRepository exposes the assignment pool.
type AssignmentRepository interface {
	// ListAll returns the pool in its natural insertion order.
	ListAll(ctx context.Context) ([]model.Assignment, error)
	// ByIDs returns the assignments whose ID appears in ids, in pool order.
	// Unknown and duplicate IDs are silently dropped.
	ByIDs(ctx context.Context, ids []string) ([]model.Assignment, error)
	// ApplyDispatch marks every assignment referenced by recs as Dispatched.
	// The whole batch is applied atomically: if any assignment is missing or
	// not in the New state, nothing is written and ErrDispatchConflict is
	// returned.
	ApplyDispatch(ctx context.Context, recs []model.DispatchRecord) error
}

// TechnicianRepository exposes the technician pool.
type TechnicianRepository interface {
	ListAll(ctx context.Context) ([]model.Technician, error)
	// ByIDs returns the technicians whose ID appears in ids, in pool order.
	// Unknown and duplicate IDs are silently dropped.
	ByIDs(ctx context.Context, ids []string) ([]model.Technician, error)
}
