package validation

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "swingctx/internal/errors"
)

// FileValidator checks input paths before the loader opens them
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInput checks that path names an existing, readable regular file.
// A missing path yields a NOT_FOUND AppError; anything else that stops the
// file from being read yields a READ AppError.
func (v *FileValidator) ValidateInput(path string) error {
	info, err := os.Stat(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		v.logger.Error("Input file does not exist",
			slog.String("path", path))
		return apperrors.NewNotFoundError(path)
	}
	if err != nil {
		v.logger.Error("Failed to stat input file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return apperrors.NewReadError(path, err)
	}
	if info.IsDir() {
		v.logger.Error("Input path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewReadError(path, fmt.Errorf("%s is a directory", path))
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("Input file is not readable",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return apperrors.NewReadError(path, err)
	}
	file.Close()

	v.logger.Debug("Input file validated",
		slog.String("path", path),
		slog.Int64("size", info.Size()))
	return nil
}

// IsWorkbook reports whether path should be read as an Excel workbook
// rather than as CSV. Only the extension is consulted.
func IsWorkbook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// IsTemporaryWorkbook reports whether path is an Excel lock file ("~$name.xlsx")
func IsTemporaryWorkbook(path string) bool {
	return IsWorkbook(path) && strings.HasPrefix(filepath.Base(path), "~$")
}
