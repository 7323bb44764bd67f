package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"swingctx/internal/config"
	"swingctx/internal/dataprocessing"
	"swingctx/internal/errors"
	"swingctx/internal/exporter"
	"swingctx/internal/infrastructure"
	"swingctx/pkg/contracts/domain"
)

// Process exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Console messages shown to the operator on stdout
const (
	usageMessage            = "Usage: swingctx <csv_file>"
	notFoundMessage         = "Error: File '%s' not found.\n"
	loadFailedMessage       = "An error occurred: %s\n"
	insufficientDataMessage = "Error: Insufficient data points in the CSV."
	exportFailedMessage     = "Error exporting CSV: %s\n"
	exportedMessage         = "\nCSV exported successfully to %s\n"
)

// Env carries everything a run takes from its surroundings.
// Zero fields fall back to os.Stdout, the global logger, config.Default()
// and no-op telemetry.
type Env struct {
	Stdout    io.Writer
	Logger    *slog.Logger
	Config    *config.Config
	Telemetry *infrastructure.TelemetryProviders
}

func (e Env) withDefaults() Env {
	if e.Stdout == nil {
		e.Stdout = os.Stdout
	}
	if e.Logger == nil {
		e.Logger = infrastructure.GetLogger()
	}
	if e.Config == nil {
		e.Config = config.Default()
	}
	if e.Telemetry == nil {
		e.Telemetry = &infrastructure.TelemetryProviders{Logger: e.Logger}
	}
	return e
}

// runner holds the per-run collaborators
type runner struct {
	env      Env
	logger   *slog.Logger
	loader   *dataprocessing.Loader
	exporter *exporter.ContextExporter
}

// Run contextualizes the single file named in args and returns the process
// exit code. A wrong argument count or too few samples exits 1. Load and
// export failures are reported on stdout but still exit 0.
func Run(ctx context.Context, args []string, env Env) int {
	env = env.withDefaults()
	ctx = infrastructure.EnsureRunID(ctx)
	logger := infrastructure.WithComponent(env.Logger, "app")
	start := time.Now()

	if len(args) != 1 {
		fmt.Fprintln(env.Stdout, usageMessage)
		logger.WarnContext(ctx, "Invalid arguments",
			slog.String("error_type", string(errors.ErrTypeUsage)),
			slog.Int("arg_count", len(args)))
		env.Telemetry.Metrics.RecordError(ctx, string(errors.ErrTypeUsage))
		return ExitFailure
	}
	input := args[0]

	r := &runner{
		env:      env,
		logger:   logger,
		loader:   dataprocessing.NewLoader(infrastructure.WithComponent(env.Logger, "loader")),
		exporter: exporter.NewContextExporter(env.Config.Export, infrastructure.WithComponent(env.Logger, "exporter")),
	}

	logger.InfoContext(ctx, "Run started", slog.String("input", input))

	samples := r.load(ctx, input)

	records, err := r.contextualize(ctx, samples)
	if err != nil {
		fmt.Fprintln(env.Stdout, insufficientDataMessage)
		r.summary(ctx, input, "", len(samples), 0, start)
		return ExitFailure
	}

	out, err := r.export(ctx, records, input)
	if err != nil {
		fmt.Fprintf(env.Stdout, exportFailedMessage, detail(err))
		r.summary(ctx, input, "", len(samples), len(records), start)
		return ExitOK
	}

	fmt.Fprintf(env.Stdout, exportedMessage, out)
	r.summary(ctx, input, out, len(samples), len(records), start)
	return ExitOK
}

// load reads input. Failures are printed and the run carries on with no samples.
func (r *runner) load(ctx context.Context, input string) domain.SampleSequence {
	ctx, span := r.env.Telemetry.StartStage(ctx, infrastructure.StageLoad)
	start := time.Now()

	result := r.loader.Load(ctx, input)
	r.env.Telemetry.EndStage(ctx, span, infrastructure.StageLoad, start, result.Err)

	if result.Err != nil {
		if errors.IsType(result.Err, errors.ErrTypeNotFound) {
			fmt.Fprintf(r.env.Stdout, notFoundMessage, input)
		} else {
			fmt.Fprintf(r.env.Stdout, loadFailedMessage, detail(result.Err))
		}
		r.recordError(ctx, result.Err, input)
		return nil
	}

	r.env.Telemetry.Metrics.AddSamples(ctx, len(result.Samples))
	return result.Samples
}

func (r *runner) contextualize(ctx context.Context, samples domain.SampleSequence) (domain.ContextualRecordSequence, error) {
	ctx, span := r.env.Telemetry.StartStage(ctx, infrastructure.StageContextualize)
	start := time.Now()

	records, err := dataprocessing.Contextualize(samples)
	r.env.Telemetry.EndStage(ctx, span, infrastructure.StageContextualize, start, err)

	if err != nil {
		r.recordError(ctx, err, "")
		return nil, err
	}

	r.logger.DebugContext(ctx, "Samples contextualized",
		slog.Int("samples", samples.Len()),
		slog.Int("records", len(records)))
	return records, nil
}

func (r *runner) export(ctx context.Context, records domain.ContextualRecordSequence, input string) (string, error) {
	ctx, span := r.env.Telemetry.StartStage(ctx, infrastructure.StageExport)
	start := time.Now()

	out, err := r.exporter.Export(ctx, records, input)
	r.env.Telemetry.EndStage(ctx, span, infrastructure.StageExport, start, err)

	if err != nil {
		r.recordError(ctx, err, out)
		return "", err
	}

	r.env.Telemetry.Metrics.AddRecords(ctx, len(records))
	return out, nil
}

// recordError logs err with its type and counts it
func (r *runner) recordError(ctx context.Context, err error, path string) {
	errType := string(errors.TypeOf(err))
	attrs := []any{
		slog.String("error_type", errType),
		slog.String("error", err.Error()),
	}
	if path != "" {
		attrs = append(attrs, slog.String("path", path))
	}
	r.logger.ErrorContext(ctx, "Pipeline stage failed", attrs...)
	r.env.Telemetry.Metrics.RecordError(ctx, errType)
}

func (r *runner) summary(ctx context.Context, input, output string, samples, records int, start time.Time) {
	dropped := 0
	if records > 0 {
		dropped = samples - records
	}
	r.logger.InfoContext(ctx, "Run finished",
		slog.String("input", input),
		slog.String("output", output),
		slog.Int("samples", samples),
		slog.Int("records", records),
		slog.Int("dropped_edge_samples", dropped),
		slog.Duration("duration", time.Since(start)))
}

// detail returns the text shown after a console error prefix: the underlying
// cause when err is an AppError, otherwise err itself.
func detail(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Detail()
	}
	return err.Error()
}
