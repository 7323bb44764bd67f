package exporter

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"swingctx/internal/config"
	apperrors "swingctx/internal/errors"
	"swingctx/pkg/contracts/domain"
)

var errNoRecords = errors.New("no records to export")

// ContextExporter writes contextualized records next to the input they came from
type ContextExporter struct {
	writer    *CSVWriter
	prefix    string
	bomPrefix bool
	logger    *slog.Logger
}

// NewContextExporter creates an exporter using the prefix and BOM settings of cfg
func NewContextExporter(cfg config.ExportConfig, logger *slog.Logger) *ContextExporter {
	if logger == nil {
		logger = slog.Default()
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = domain.OutputPrefix
	}
	return &ContextExporter{
		writer:    NewCSVWriter(logger),
		prefix:    prefix,
		bomPrefix: cfg.BOMPrefix,
		logger:    logger,
	}
}

// OutputPath returns where the records for input are written:
// the input's directory, "Contextualized_" + the input's stem + ".csv".
func OutputPath(input string) string {
	return outputPath(input, domain.OutputPrefix)
}

// OutputPath returns the output path for input under this exporter's prefix
func (e *ContextExporter) OutputPath(input string) string {
	return outputPath(input, e.prefix)
}

func outputPath(input, prefix string) string {
	return filepath.Join(filepath.Dir(input), prefix+stem(input)+".csv")
}

// stem strips the directory and the last extension from path. Leading dots
// do not start an extension, so ".motion" keeps its whole name.
func stem(path string) string {
	base := filepath.Base(path)
	if !strings.Contains(strings.TrimLeft(base, "."), ".") {
		return base
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Export writes records to the output path for inputPath and returns that path.
// The header is the first record's field order; each row is laid out under it.
// Every failure is a WRITE AppError.
func (e *ContextExporter) Export(ctx context.Context, records domain.ContextualRecordSequence, inputPath string) (string, error) {
	out := e.OutputPath(inputPath)

	if len(records) == 0 {
		return out, apperrors.NewWriteError(out, errNoRecords)
	}

	header := records[0].CSVHeader()
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.RowFor(header))
	}

	err := e.writer.WriteCSV(out, WriteOptions{
		Headers:   header,
		Records:   rows,
		BOMPrefix: e.bomPrefix,
	})
	if err != nil {
		e.logger.ErrorContext(ctx, "Failed to export contextualized CSV",
			slog.String("path", out),
			slog.String("error", err.Error()))
		return out, apperrors.NewWriteError(out, err)
	}

	e.logger.InfoContext(ctx, "Contextualized CSV exported",
		slog.String("path", out),
		slog.Int("records", len(rows)),
		slog.Int("columns", len(header)))

	return out, nil
}
