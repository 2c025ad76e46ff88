package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rabwill/fieldops/config"
	"github.com/rabwill/fieldops/core/dispatch"
	"github.com/rabwill/fieldops/core/dispatch/audit"
	coremetrics "github.com/rabwill/fieldops/core/metrics"
	"github.com/rabwill/fieldops/infra/logger"
	"github.com/rabwill/fieldops/infra/metrics"
	"github.com/rabwill/fieldops/infra/mqtt"
	"github.com/rabwill/fieldops/infra/store"
	"github.com/rabwill/fieldops/internal/eventbus"
	"github.com/rabwill/fieldops/mcpserver"
)

// Service orchestrates the dispatch workflow, the tool server and the sinks.
type Service struct {
	Dispatch *dispatch.Service
	server   *mcpserver.Server
	bus      *eventbus.Bus
	log      logger.Logger
	addr     string

	promEnabled bool
	promAddr    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	assignments, err := store.LoadAssignments(cfg.Data.AssignmentsFile)
	if err != nil {
		return nil, fmt.Errorf("load assignments: %w", err)
	}
	technicians, err := store.LoadTechnicians(cfg.Data.TechniciansFile)
	if err != nil {
		return nil, fmt.Errorf("load technicians: %w", err)
	}
	aRepo := store.NewMemoryAssignments(assignments)
	tRepo := store.NewMemoryTechnicians(technicians)

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(cfg.Metrics.InfluxURL,
			cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		sinks = append(sinks, sink)
	}
	var sink coremetrics.MetricsSink
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	svc, err := dispatch.NewService(aRepo, tRepo, cfg.Dispatch, logger.New("dispatch"), sink)
	if err != nil {
		return nil, fmt.Errorf("dispatch service: %w", err)
	}

	auditStore, err := audit.NewStore(cfg.Audit)
	if err != nil {
		return nil, fmt.Errorf("audit store: %w", err)
	}
	svc.SetAuditStore(auditStore)

	if cfg.Notify.Enabled {
		notifier, err := mqtt.NewPahoNotifier(cfg.Notify)
		if err != nil {
			return nil, fmt.Errorf("mqtt notifier: %w", err)
		}
		svc.SetNotifier(notifier)
	}

	bus := eventbus.New()
	svc.SetEventBus(bus)

	return &Service{
		Dispatch:    svc,
		server:      mcpserver.New(svc, logger.New("mcp")),
		bus:         bus,
		log:         logg,
		addr:        cfg.Server.Addr,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promAddr:    cfg.Metrics.PrometheusAddr,
	}, nil
}

// Run starts the tool server and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	// Log commit batches as they pass over the bus.
	events := s.bus.Subscribe()
	go func() {
		for ev := range events {
			if ce, ok := ev.(dispatch.CommitEvent); ok {
				s.log.Infof("commit batch %s: %d rows", ce.BatchID, ce.Result.Count)
			}
		}
	}()

	srv := &http.Server{Addr: s.addr, Handler: s.server.Handler()}
	go func() {
		<-ctx.Done()
		if err := srv.Close(); err != nil {
			s.log.Errorf("server close: %v", err)
		}
	}()
	s.log.Infof("listening on %s", s.addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error { return s.Dispatch.Close() }
