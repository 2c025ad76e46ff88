// Package audit persists commit batches so that dispatch decisions can be
// reviewed after the fact.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/rabwill/fieldops/core/model"
)

// LogRecord captures one committed batch.
type LogRecord struct {
	BatchID   string                 `json:"batch_id"`
	Timestamp time.Time              `json:"timestamp"`
	Rows      []model.DispatchRecord `json:"rows"`
	Warnings  []string               `json:"warnings,omitempty"`
}

// LogQuery defines filters for retrieving records.
type LogQuery struct {
	Start        time.Time
	End          time.Time
	AssignmentID string
	TechnicianID string
}

func (q LogQuery) matches(r LogRecord) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.AssignmentID == "" && q.TechnicianID == "" {
		return true
	}
	for _, row := range r.Rows {
		if q.AssignmentID != "" && row.AssignmentID == q.AssignmentID {
			return true
		}
		if q.TechnicianID != "" && row.TechnicianID == q.TechnicianID {
			return true
		}
	}
	return false
}

// LogStore persists LogRecords and supports querying.
type LogStore interface {
	Append(ctx context.Context, rec LogRecord) error
	Query(ctx context.Context, q LogQuery) ([]LogRecord, error)
	Close() error
}

// Config selects and locates the audit backend.
type Config struct {
	// Backend selects the store type: "jsonl" or "sqlite".
	Backend string `json:"backend"`
	// Path is the file location of the store.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" {
		c.Path = "dispatch-audit.log"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Backend != "jsonl" && c.Backend != "sqlite" {
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

// NewStore builds the store selected by the configuration.
func NewStore(cfg Config) (LogStore, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	default:
		return NewJSONLStore(cfg.Path)
	}
}
