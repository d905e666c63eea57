package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/johnquangdev/transcript-dubber/dubbing"

// PipelineMetrics records dubbing run outcomes. Instruments are created from
// the global meter provider, so they are no-ops until Setup runs.
type PipelineMetrics struct {
	tracer   trace.Tracer
	runs     metric.Int64Counter
	duration metric.Float64Histogram
}

// NewPipelineMetrics creates the pipeline instruments
func NewPipelineMetrics() (*PipelineMetrics, error) {
	meter := otel.Meter(instrumentationName)

	runs, err := meter.Int64Counter("dubbing_runs_total",
		metric.WithDescription("Dubbing pipeline runs by outcome"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("dubbing_run_duration_seconds",
		metric.WithDescription("Dubbing pipeline duration"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		tracer:   otel.Tracer(instrumentationName),
		runs:     runs,
		duration: duration,
	}, nil
}

// StartStage opens a span for one pipeline stage
func (m *PipelineMetrics) StartStage(ctx context.Context, stage string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "dubbing."+stage)
}

// RecordRun records a finished run. outcome is "ok" or the failure kind.
func (m *PipelineMetrics) RecordRun(ctx context.Context, outcome, failedAt string, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.String("failed_at", failedAt),
	)
	m.runs.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}
