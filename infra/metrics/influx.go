package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/rabwill/fieldops/core/metrics"
	"github.com/rabwill/fieldops/infra/logger"
)

// InfluxSink writes workflow events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

func (s *InfluxSink) write(pts ...*write.Point) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, pts...)
}

// RecordIntake writes an intake query as a point.
func (s *InfluxSink) RecordIntake(ev coremetrics.IntakeEvent) error {
	p := influxdb2.NewPointWithMeasurement("intake").
		AddTag("region", ev.Region).
		AddTag("priority", ev.Priority).
		AddField("matched", ev.Matched).
		AddField("fallback", ev.Fallback).
		SetTime(ev.Time)
	return s.write(p)
}

// RecordPlan writes a plan assembly as a point.
func (s *InfluxSink) RecordPlan(ev coremetrics.PlanEvent) error {
	p := influxdb2.NewPointWithMeasurement("plan").
		AddField("items", ev.Items).
		AddField("unresolved", ev.Unresolved).
		SetTime(ev.Time)
	return s.write(p)
}

// RecordCommit writes a commit batch as a point.
func (s *InfluxSink) RecordCommit(ev coremetrics.CommitEvent) error {
	p := influxdb2.NewPointWithMeasurement("commit").
		AddTag("batch_id", ev.BatchID).
		AddField("rows", ev.Rows).
		AddField("warnings", ev.Warnings).
		AddField("applied", ev.Applied).
		SetTime(ev.Time)
	return s.write(p)
}

// Close shuts down the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
