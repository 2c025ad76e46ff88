package metrics

import coremetrics "github.com/rabwill/fieldops/core/metrics"

// MultiSink fans workflow events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordIntake forwards the event to all sinks, returning the first error.
func (m *MultiSink) RecordIntake(ev coremetrics.IntakeEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordIntake(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordPlan forwards the event to all sinks, returning the first error.
func (m *MultiSink) RecordPlan(ev coremetrics.PlanEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordPlan(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordCommit forwards the event to all sinks, returning the first error.
func (m *MultiSink) RecordCommit(ev coremetrics.CommitEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordCommit(ev); err != nil {
			return err
		}
	}
	return nil
}
