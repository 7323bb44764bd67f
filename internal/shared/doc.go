// Package shared holds code used across packages that belongs to no single
// layer. Today that is only the testutil subpackage: motion-file fixtures
// (CSV and .xlsx) and a buffering slog handler for asserting on log output.
package shared
