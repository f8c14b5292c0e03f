package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"nbastats/internal/config"
	"nbastats/pkg/contracts"
)

const (
	ServiceName = "nbastats"
	MeterName   = "nbastats"
)

// Pipeline stage names used for spans and the stage_duration histogram
const (
	StageLoad     = "load"
	StageClean    = "clean"
	StageRank     = "rank"
	StageGroup    = "group"
	StageDescribe = "describe"
	StageExport   = "export"
	StageRender   = "render"
	StagePipeline = "pipeline"
)

const (
	attrStage  = "stage"
	attrStatus = "status"
	attrColumn = "column"
	attrReason = "reason"
)

// Telemetry holds the tracer and the pipeline metrics of one process.
// With tracing or metrics disabled the corresponding side is a no-op.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Metrics        *PipelineMetrics
	Logger         *slog.Logger

	registry *promclient.Registry
}

// TelemetryOption customizes InitializeTelemetry
type TelemetryOption func(*telemetryOptions)

type telemetryOptions struct {
	traceWriter io.Writer
}

// WithTraceWriter sends stdout trace output to w
func WithTraceWriter(w io.Writer) TelemetryOption {
	return func(o *telemetryOptions) { o.traceWriter = w }
}

// InitializeTelemetry sets up tracing and metrics from configuration
func InitializeTelemetry(cfg config.TelemetryConfig, logger *slog.Logger, opts ...TelemetryOption) (*Telemetry, error) {
	if logger == nil {
		logger = GetLogger()
	}
	options := telemetryOptions{traceWriter: os.Stderr}
	for _, opt := range opts {
		opt(&options)
	}

	ctx := context.Background()
	tel := &Telemetry{
		Tracer: tracenoop.NewTracerProvider().Tracer(MeterName),
		Logger: logger,
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(contracts.Version),
	)

	if cfg.Tracing {
		if err := tel.initializeTracing(ctx, cfg, res, options); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	meter := metricnoop.NewMeterProvider().Meter(MeterName)
	if cfg.Metrics {
		m, err := tel.initializeMetrics(ctx, res)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
		meter = m
	}

	metrics, err := NewPipelineMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}
	tel.Metrics = metrics

	logger.DebugContext(ctx, "Telemetry initialized",
		slog.Bool("tracing_enabled", cfg.Tracing),
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.Bool("metrics_enabled", cfg.Metrics))

	return tel, nil
}

// NoopTelemetry returns telemetry that records nothing
func NoopTelemetry() *Telemetry {
	metrics, _ := NewPipelineMetrics(metricnoop.NewMeterProvider().Meter(MeterName))
	return &Telemetry{
		Tracer:  tracenoop.NewTracerProvider().Tracer(MeterName),
		Metrics: metrics,
		Logger:  GetLogger(),
	}
}

func (t *Telemetry) initializeTracing(ctx context.Context, cfg config.TelemetryConfig, res *resource.Resource, opts telemetryOptions) error {
	switch cfg.TraceExporter {
	case "stdout":
	case "none", "":
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(opts.traceWriter),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	// A batch CLI exits quickly; spans are exported as they end
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)

	t.TracerProvider = tp
	t.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(contracts.Version))
	otel.SetTracerProvider(tp)

	t.Logger.DebugContext(ctx, "Tracing initialized",
		slog.String("exporter", cfg.TraceExporter),
		slog.Float64("sample_ratio", cfg.SampleRatio))
	return nil
}

// initializeMetrics wires an OTel meter provider to a private Prometheus registry
func (t *Telemetry) initializeMetrics(ctx context.Context, res *resource.Resource) (metric.Meter, error) {
	registry := promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	t.registry = registry
	t.MeterProvider = mp
	otel.SetMeterProvider(mp)

	t.Logger.DebugContext(ctx, "Metrics initialized", slog.String("exporter", "prometheus"))
	return mp.Meter(MeterName, metric.WithInstrumentationVersion(contracts.Version)), nil
}

// WriteMetricsFile writes the current metrics in Prometheus text format.
// It is a no-op when metrics are disabled.
func (t *Telemetry) WriteMetricsFile(path string) error {
	if t.registry == nil || path == "" {
		return nil
	}
	if err := promclient.WriteToTextfile(path, t.registry); err != nil {
		return fmt.Errorf("failed to write metrics file %s: %w", path, err)
	}
	return nil
}

// Shutdown flushes and stops the providers
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if t.MeterProvider != nil {
		if err := t.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("telemetry shutdown errors: %v", errs)
	}
	return nil
}

// PipelineMetrics holds the metrics recorded by an analysis run
type PipelineMetrics struct {
	RowsLoaded    metric.Int64Counter
	RowsDropped   metric.Int64Counter
	StageDuration metric.Float64Histogram
	Runs          metric.Int64Counter
	Errors        metric.Int64Counter
}

// NewPipelineMetrics creates the pipeline instruments on meter
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	rowsLoaded, err := meter.Int64Counter(
		"rows_loaded_total",
		metric.WithDescription("Total number of data rows read from the input file"),
	)
	if err != nil {
		return nil, err
	}

	rowsDropped, err := meter.Int64Counter(
		"rows_dropped_total",
		metric.WithDescription("Total number of rows removed by cleaning, by column and reason"),
	)
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram(
		"stage_duration_seconds",
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	runs, err := meter.Int64Counter(
		"pipeline_runs_total",
		metric.WithDescription("Total number of analysis runs by status"),
	)
	if err != nil {
		return nil, err
	}

	errorsTotal, err := meter.Int64Counter(
		"pipeline_errors_total",
		metric.WithDescription("Total number of failed stages by error type"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		RowsLoaded:    rowsLoaded,
		RowsDropped:   rowsDropped,
		StageDuration: stageDuration,
		Runs:          runs,
		Errors:        errorsTotal,
	}, nil
}

// RecordRowsLoaded adds n loaded rows
func (m *PipelineMetrics) RecordRowsLoaded(ctx context.Context, n int) {
	m.RowsLoaded.Add(ctx, int64(n))
}

// RecordRowsDropped adds n rows dropped for reason on column
func (m *PipelineMetrics) RecordRowsDropped(ctx context.Context, column, reason string, n int) {
	if n <= 0 {
		return
	}
	m.RowsDropped.Add(ctx, int64(n), metric.WithAttributes(
		attribute.String(attrColumn, column),
		attribute.String(attrReason, reason),
	))
}

// RecordRun counts a finished run
func (m *PipelineMetrics) RecordRun(ctx context.Context, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.Runs.Add(ctx, 1, metric.WithAttributes(attribute.String(attrStatus, status)))
}

// StartStage opens a span for a pipeline stage. The returned function ends
// the span, records the stage duration and marks the span failed when err
// is non-nil.
func (t *Telemetry) StartStage(ctx context.Context, stage string, attrs ...attribute.KeyValue) (context.Context, func(err error)) {
	start := time.Now()
	ctx, span := t.Tracer.Start(ctx, "nbastats."+stage,
		trace.WithAttributes(append(attrs, attribute.String(attrStage, stage))...))

	return ctx, func(err error) {
		status := "success"
		if err != nil {
			status = "failure"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			t.Metrics.Errors.Add(ctx, 1, metric.WithAttributes(attribute.String(attrStage, stage)))
		}
		t.Metrics.StageDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
			attribute.String(attrStage, stage),
			attribute.String(attrStatus, status),
		))
		span.End()
	}
}

// AddSpanEvent adds an event to the current span with structured attributes
func AddSpanEvent(ctx context.Context, name string, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		switch val := v.(type) {
		case string:
			attrs = append(attrs, attribute.String(k, val))
		case int:
			attrs = append(attrs, attribute.Int(k, val))
		case int64:
			attrs = append(attrs, attribute.Int64(k, val))
		case float64:
			attrs = append(attrs, attribute.Float64(k, val))
		case bool:
			attrs = append(attrs, attribute.Bool(k, val))
		default:
			attrs = append(attrs, attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}

	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// SpanTraceID returns the OTel trace ID of the span in ctx, empty when none
func SpanTraceID(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}
