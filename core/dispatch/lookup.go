package dispatch

import (
	"context"
	"fmt"

	"github.com/rabwill/fieldops/core/model"
)

// AvailableTechnicians returns every available technician, optionally limited
// to an exact region match. Unlike intake there is no fallback pass.
func (s *Service) AvailableTechnicians(ctx context.Context, region string) ([]model.Technician, error) {
	pool, err := s.technicians.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list technicians: %w", err)
	}
	res := make([]model.Technician, 0, len(pool))
	for _, t := range pool {
		if !t.Available {
			continue
		}
		if region != "" && t.Region != region {
			continue
		}
		res = append(res, t)
	}
	return res, nil
}

// AssignmentsByIDs resolves assignment IDs against the pool. Unknown IDs are
// silently dropped and duplicates collapse to a single record.
func (s *Service) AssignmentsByIDs(ctx context.Context, ids []string) ([]model.Assignment, error) {
	return s.assignments.ByIDs(ctx, ids)
}

// TechniciansByIDs resolves technician IDs against the pool. Unknown IDs are
// silently dropped and duplicates collapse to a single record.
func (s *Service) TechniciansByIDs(ctx context.Context, ids []string) ([]model.Technician, error) {
	return s.technicians.ByIDs(ctx, ids)
}
