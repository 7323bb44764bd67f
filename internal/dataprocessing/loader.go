package dataprocessing

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "swingctx/internal/errors"
	"swingctx/internal/validation"
	"swingctx/pkg/contracts/domain"
)

const utf8BOM = "\ufeff"

var errLockFile = errors.New("file is an Excel lock file, not a workbook")

// LoadResult is the outcome of loading one input file. Exactly one of
// Samples and Err is meaningful: on failure Samples is empty.
type LoadResult struct {
	Samples domain.SampleSequence
	Err     error
}

// OK reports whether the load succeeded
func (r LoadResult) OK() bool {
	return r.Err == nil
}

// table is a header plus data rows as read from a file, before projection
type table struct {
	header []string
	rows   [][]string
}

// Loader reads motion samples from CSV files or Excel workbooks
type Loader struct {
	validator *validation.FileValidator
	logger    *slog.Logger
}

// NewLoader creates a loader that logs through logger
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		validator: validation.NewFileValidator(logger),
		logger:    logger,
	}
}

// LoadSamples loads path with a loader using the default logger
func LoadSamples(ctx context.Context, path string) LoadResult {
	return NewLoader(nil).Load(ctx, path)
}

// Load reads path and projects every data row onto the Timestamp,
// Accel Magnitude and Gyro Magnitude columns. Missing columns and missing
// cells become empty strings. Load never panics on malformed input; it
// reports NOT_FOUND or READ errors through the result instead.
func (l *Loader) Load(ctx context.Context, path string) LoadResult {
	if err := l.validator.ValidateInput(path); err != nil {
		return LoadResult{Err: err}
	}
	if validation.IsTemporaryWorkbook(path) {
		l.logger.ErrorContext(ctx, "Refusing to read Excel lock file",
			slog.String("path", path))
		return LoadResult{Err: apperrors.NewReadError(path, errLockFile)}
	}

	var (
		tbl    *table
		err    error
		format = "csv"
	)
	if validation.IsWorkbook(path) {
		format = "xlsx"
		tbl, err = readWorkbook(path)
	} else {
		tbl, err = readCSV(path)
	}
	if err != nil {
		l.logger.ErrorContext(ctx, "Failed to read input file",
			slog.String("path", path),
			slog.String("format", format),
			slog.String("error", err.Error()))
		return LoadResult{Err: apperrors.NewReadError(path, err)}
	}

	for _, column := range []string{domain.ColumnTimestamp, domain.ColumnAccelMagnitude, domain.ColumnGyroMagnitude} {
		if !contains(tbl.header, column) {
			l.logger.WarnContext(ctx, "Column missing from input, values left empty",
				slog.String("path", path),
				slog.String("column", column))
		}
	}

	samples := project(tbl)

	l.logger.InfoContext(ctx, "Samples loaded",
		slog.String("path", path),
		slog.String("format", format),
		slog.Int("columns", len(tbl.header)),
		slog.Int("samples", len(samples)))

	return LoadResult{Samples: samples}
}

// Field returns row[key], or def when the row has no such key.
func Field(row map[string]string, key, def string) string {
	if v, ok := row[key]; ok {
		return v
	}
	return def
}

// project maps each data row onto a Sample
func project(tbl *table) domain.SampleSequence {
	samples := make(domain.SampleSequence, 0, len(tbl.rows))
	for _, cells := range tbl.rows {
		row := rowMap(tbl.header, cells)
		samples = append(samples, domain.Sample{
			Timestamp:      Field(row, domain.ColumnTimestamp, ""),
			AccelMagnitude: Field(row, domain.ColumnAccelMagnitude, ""),
			GyroMagnitude:  Field(row, domain.ColumnGyroMagnitude, ""),
		})
	}
	return samples
}

// rowMap pairs cells with header names. Cells past the end of a short row are
// absent from the map; cells beyond the header are ignored. When a header
// name repeats, the last column wins.
func rowMap(header, cells []string) map[string]string {
	row := make(map[string]string, len(header))
	for j, name := range header {
		if j >= len(cells) {
			break
		}
		row[name] = cells[j]
	}
	return row
}

// readCSV reads a header-delimited comma-separated file. Quotes inside
// unquoted fields are kept as text. A file with no header yields an empty table.
func readCSV(path string) (*table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return &table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse rows: %w", err)
	}

	return &table{header: header, rows: rows}, nil
}

// readWorkbook reads the first sheet of an Excel workbook; its first row is the header.
// An empty sheet yields an empty table.
func readWorkbook(path string) (*table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &table{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return &table{}, nil
	}

	header := rows[0]
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	return &table{header: header, rows: rows[1:]}, nil
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
