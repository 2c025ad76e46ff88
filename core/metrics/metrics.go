package metrics

import "time"

// IntakeEvent records one intake query over the assignment pool.
type IntakeEvent struct {
	Priority string
	Region   string
	Team     string
	Matched  int
	Fallback bool // recency window was dropped on a second pass
	Time     time.Time
}

// PlanEvent records one plan assembly.
type PlanEvent struct {
	Items      int
	Unresolved int // plan items whose technician could not be resolved
	Time       time.Time
}

// CommitEvent records one commit batch.
type CommitEvent struct {
	BatchID  string
	Rows     int
	Warnings int
	Applied  bool // true when the batch was persisted to the pool
	Time     time.Time
}

// MetricsSink records dispatch workflow events for observability purposes.
type MetricsSink interface {
	RecordIntake(ev IntakeEvent) error
	RecordPlan(ev PlanEvent) error
	RecordCommit(ev CommitEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordIntake(IntakeEvent) error { return nil }
func (NopSink) RecordPlan(PlanEvent) error     { return nil }
func (NopSink) RecordCommit(CommitEvent) error { return nil }
