package store

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rabwill/fieldops/core/model"
)

//go:embed seed/assignments.json
var seedAssignments []byte

//go:embed seed/technicians.json
var seedTechnicians []byte

// SeedAssignments returns the embedded demo work-order pool.
func SeedAssignments() ([]model.Assignment, error) {
	var pool []model.Assignment
	if err := json.Unmarshal(seedAssignments, &pool); err != nil {
		return nil, fmt.Errorf("decode embedded assignments: %w", err)
	}
	return pool, nil
}

// SeedTechnicians returns the embedded demo technician pool.
func SeedTechnicians() ([]model.Technician, error) {
	var pool []model.Technician
	if err := json.Unmarshal(seedTechnicians, &pool); err != nil {
		return nil, fmt.Errorf("decode embedded technicians: %w", err)
	}
	return pool, nil
}

// LoadAssignments reads a work-order pool from a JSON file. An empty path
// falls back to the embedded seed.
func LoadAssignments(path string) ([]model.Assignment, error) {
	if path == "" {
		return SeedAssignments()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read assignments: %w", err)
	}
	var pool []model.Assignment
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("decode assignments %s: %w", path, err)
	}
	return pool, nil
}

// LoadTechnicians reads a technician pool from a JSON file. An empty path
// falls back to the embedded seed.
func LoadTechnicians(path string) ([]model.Technician, error) {
	if path == "" {
		return SeedTechnicians()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read technicians: %w", err)
	}
	var pool []model.Technician
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("decode technicians %s: %w", path, err)
	}
	return pool, nil
}
