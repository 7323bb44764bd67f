package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"swingctx/internal/config"
	"swingctx/pkg/contracts"
)

const (
	ServiceName = "swingctx"
	MeterName   = "swingctx"
)

// Pipeline stage names used for spans and the stage duration histogram.
const (
	StageLoad          = "load"
	StageContextualize = "contextualize"
	StageExport        = "export"
)

// TelemetryProviders holds the OpenTelemetry providers for one run.
// Tracing is optional; metrics are always collected into a private
// Prometheus registry and written out only when a textfile is configured.
type TelemetryProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *prometheus.Registry
	Metrics        *PipelineMetrics
	Logger         *slog.Logger

	metricsTextfile string
}

// PipelineMetrics holds the counters and histograms recorded by the pipeline
type PipelineMetrics struct {
	SamplesLoaded  metric.Int64Counter
	RecordsWritten metric.Int64Counter
	Errors         metric.Int64Counter
	StageDuration  metric.Float64Histogram
}

// InitializeTelemetry sets up tracing and metrics. Spans from the stdout exporter
// are written to traceOut.
func InitializeTelemetry(cfg config.TelemetryConfig, traceOut io.Writer, logger *slog.Logger) (*TelemetryProviders, error) {
	if logger == nil {
		logger = GetLogger()
	}
	if traceOut == nil {
		traceOut = os.Stderr
	}

	res, err := createResource()
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	providers := &TelemetryProviders{
		Logger:          logger,
		metricsTextfile: cfg.MetricsTextfile,
	}

	if err := initializeTracing(cfg, traceOut, res, providers); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := initializeMetrics(res, providers); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	logger.Debug("Telemetry initialized",
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.String("metrics_textfile", cfg.MetricsTextfile))

	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource() (*resource.Resource, error) {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(contracts.Version),
		attribute.String("service.instance.id", generateInstanceID()),
	), nil
}

// initializeTracing sets up OpenTelemetry tracing
func initializeTracing(cfg config.TelemetryConfig, traceOut io.Writer, res *resource.Resource, providers *TelemetryProviders) error {
	switch cfg.TraceExporter {
	case "stdout":
		exporter, err := stdouttrace.New(
			stdouttrace.WithWriter(traceOut),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return fmt.Errorf("failed to create trace exporter: %w", err)
		}

		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
		providers.TracerProvider = tp
		providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(contracts.Version))
	case "none", "":
		providers.Tracer = noop.NewTracerProvider().Tracer(MeterName)
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}
	return nil
}

// initializeMetrics sets up a meter provider backed by a private Prometheus registry
func initializeMetrics(res *resource.Resource, providers *TelemetryProviders) error {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	providers.Registry = registry
	providers.MeterProvider = mp
	providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(contracts.Version))

	metrics, err := CreatePipelineMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("failed to create pipeline metrics: %w", err)
	}
	providers.Metrics = metrics
	return nil
}

// CreatePipelineMetrics creates the pipeline instruments on meter
func CreatePipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	samplesLoaded, err := meter.Int64Counter(
		"swingctx_samples_loaded",
		metric.WithDescription("Number of samples read from input files"),
	)
	if err != nil {
		return nil, err
	}

	recordsWritten, err := meter.Int64Counter(
		"swingctx_records_written",
		metric.WithDescription("Number of contextualized records written"),
	)
	if err != nil {
		return nil, err
	}

	errorsTotal, err := meter.Int64Counter(
		"swingctx_errors",
		metric.WithDescription("Number of pipeline errors by type"),
	)
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram(
		"swingctx_stage_duration",
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		SamplesLoaded:  samplesLoaded,
		RecordsWritten: recordsWritten,
		Errors:         errorsTotal,
		StageDuration:  stageDuration,
	}, nil
}

// AddSamples records n loaded samples
func (m *PipelineMetrics) AddSamples(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.SamplesLoaded.Add(ctx, int64(n))
}

// AddRecords records n written records
func (m *PipelineMetrics) AddRecords(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.RecordsWritten.Add(ctx, int64(n))
}

// RecordError counts one error of the given type
func (m *PipelineMetrics) RecordError(ctx context.Context, errType string) {
	if m == nil {
		return
	}
	m.Errors.Add(ctx, 1, metric.WithAttributes(attribute.String("type", errType)))
}

// RecordStage records how long a pipeline stage took
func (m *PipelineMetrics) RecordStage(ctx context.Context, stage string, duration time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("stage", stage)))
}

// StartStage starts a span for a pipeline stage
func (p *TelemetryProviders) StartStage(ctx context.Context, stage string) (context.Context, trace.Span) {
	tracer := p.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(MeterName)
	}
	return tracer.Start(ctx, "swingctx."+stage,
		trace.WithAttributes(attribute.String("stage", stage)))
}

// EndStage closes span, marking it failed when err is non-nil, and records the
// stage duration.
func (p *TelemetryProviders) EndStage(ctx context.Context, span trace.Span, stage string, start time.Time, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
	p.Metrics.RecordStage(ctx, stage, time.Since(start))
}

// WriteMetricsTextfile writes the current metrics in Prometheus text format.
// It is a no-op when no textfile is configured.
func (p *TelemetryProviders) WriteMetricsTextfile() error {
	if p.metricsTextfile == "" || p.Registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(p.metricsTextfile, p.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Shutdown writes the metrics textfile and shuts down the providers
func (p *TelemetryProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if err := p.WriteMetricsTextfile(); err != nil {
		errs = append(errs, err)
	}

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("telemetry shutdown errors: %v", errs)
	}

	p.Logger.DebugContext(ctx, "Telemetry shutdown complete")
	return nil
}

// generateInstanceID generates a unique instance identifier
func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, os.Getpid())
}
