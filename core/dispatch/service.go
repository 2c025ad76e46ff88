package dispatch

import (
	"errors"
	"sync"
	"time"

	"github.com/rabwill/fieldops/core/dispatch/audit"
	"github.com/rabwill/fieldops/core/logger"
	"github.com/rabwill/fieldops/core/metrics"
	"github.com/rabwill/fieldops/core/notify"
	"github.com/rabwill/fieldops/core/repository"
	"github.com/rabwill/fieldops/internal/eventbus"
)

// ErrEmptyRequest is returned when a plan or commit request carries no rows.
var ErrEmptyRequest = errors.New("request contains no rows")

// Service executes the dispatch-planning workflow over the assignment and
// technician pools. It holds no request state between calls; the only shared
// resource is the injected repositories.
type Service struct {
	assignments repository.AssignmentRepository
	technicians repository.TechnicianRepository
	cfg         Config
	log         logger.Logger
	sink        metrics.MetricsSink

	mu       sync.Mutex
	bus      eventbus.EventBus
	store    audit.LogStore
	notifier notify.Notifier
	now      func() time.Time
}

// NewService creates a Service over the given pools. Metrics may be nil, in
// which case events are discarded.
func NewService(assignments repository.AssignmentRepository, technicians repository.TechnicianRepository, cfg Config, log logger.Logger, sink metrics.MetricsSink) (*Service, error) {
	if assignments == nil || technicians == nil {
		return nil, errors.New("both repositories are required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		assignments: assignments,
		technicians: technicians,
		cfg:         cfg,
		log:         log,
		sink:        sink,
		now:         time.Now,
	}, nil
}

// SetAuditStore configures the store used to persist commit batches.
func (s *Service) SetAuditStore(store audit.LogStore) {
	s.mu.Lock()
	s.store = store
	s.mu.Unlock()
}

// SetNotifier configures the notifier used to push committed records.
func (s *Service) SetNotifier(n notify.Notifier) {
	s.mu.Lock()
	s.notifier = n
	s.mu.Unlock()
}

// SetEventBus configures the bus on which commit events are published.
func (s *Service) SetEventBus(bus eventbus.EventBus) {
	s.mu.Lock()
	s.bus = bus
	s.mu.Unlock()
}

// SetClock overrides the time source. Intended for tests.
func (s *Service) SetClock(now func() time.Time) {
	if now == nil {
		return
	}
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

func (s *Service) clock() func() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bus != nil {
		s.bus.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			return err
		}
	}
	if s.notifier != nil {
		return s.notifier.Close()
	}
	return nil
}
