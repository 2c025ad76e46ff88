package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/rabwill/fieldops/core/metrics"
)

// PromSink records dispatch workflow events in Prometheus metrics.
type PromSink struct {
	intake    *prometheus.CounterVec
	plans     prometheus.Counter
	unmatched prometheus.Counter
	commits   *prometheus.CounterVec
	batchSize prometheus.Histogram
}

// NewPromSink registers workflow metrics on the default Prometheus
// registerer. The metrics server should be started separately.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	intake := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "intake_requests_total",
		Help: "Total number of assignment intake queries",
	}, []string{"fallback"})
	plans := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "plan_requests_total",
		Help: "Total number of dispatch plans assembled",
	})
	unmatched := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "plan_unresolved_references_total",
		Help: "Plan items whose technician could not be resolved",
	})
	commits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "commit_batches_total",
		Help: "Total number of committed dispatch batches",
	}, []string{"applied"})
	batchSize := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "commit_batch_size",
		Help:    "Number of rows per committed batch",
		Buckets: []float64{1, 2, 5, 10, 20, 50},
	})

	collectors := []prometheus.Collector{intake, plans, unmatched, commits, batchSize}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				collectors[i] = are.ExistingCollector
				continue
			}
			return nil, err
		}
	}
	intake = collectors[0].(*prometheus.CounterVec)
	plans = collectors[1].(prometheus.Counter)
	unmatched = collectors[2].(prometheus.Counter)
	commits = collectors[3].(*prometheus.CounterVec)
	batchSize = collectors[4].(prometheus.Histogram)

	return &PromSink{intake: intake, plans: plans, unmatched: unmatched, commits: commits, batchSize: batchSize}, nil
}

// RecordIntake increments the intake counter.
func (s *PromSink) RecordIntake(ev coremetrics.IntakeEvent) error {
	s.intake.WithLabelValues(strconv.FormatBool(ev.Fallback)).Inc()
	return nil
}

// RecordPlan counts the plan and its unresolved references.
func (s *PromSink) RecordPlan(ev coremetrics.PlanEvent) error {
	s.plans.Inc()
	s.unmatched.Add(float64(ev.Unresolved))
	return nil
}

// RecordCommit counts the batch and observes its size.
func (s *PromSink) RecordCommit(ev coremetrics.CommitEvent) error {
	s.commits.WithLabelValues(strconv.FormatBool(ev.Applied)).Inc()
	s.batchSize.Observe(float64(ev.Rows))
	return nil
}
