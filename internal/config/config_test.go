package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv makes sure no variable from the caller's shell leaks into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		ConfigFileEnv,
		"SWINGCTX_LOGGING_LEVEL", "SWINGCTX_LOGGING_OUTPUT", "SWINGCTX_LOGGING_FILE_PATH",
		"SWINGCTX_EXPORT_PREFIX", "SWINGCTX_EXPORT_BOM_PREFIX",
		"SWINGCTX_TELEMETRY_TRACE_EXPORTER", "SWINGCTX_TELEMETRY_METRICS_TEXTFILE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "swingctx.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, "logs/swingctx.log", cfg.Logging.FilePath)
	assert.Equal(t, "Contextualized_", cfg.Export.Prefix)
	assert.False(t, cfg.Export.BOMPrefix)
	assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
	assert.Empty(t, cfg.Telemetry.MetricsTextfile)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no env and no file",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name: "environment overrides",
			env: map[string]string{
				"SWINGCTX_LOGGING_LEVEL":              "debug",
				"SWINGCTX_EXPORT_BOM_PREFIX":          "true",
				"SWINGCTX_TELEMETRY_METRICS_TEXTFILE": "/tmp/swingctx.prom",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.True(t, cfg.Export.BOMPrefix)
				assert.Equal(t, "/tmp/swingctx.prom", cfg.Telemetry.MetricsTextfile)
				assert.Equal(t, "stderr", cfg.Logging.Output)
			},
		},
		{
			name: "file values overlay defaults",
			file: "logging:\n  level: warn\n  output: both\ntelemetry:\n  trace_exporter: stdout\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, "both", cfg.Logging.Output)
				assert.Equal(t, "logs/swingctx.log", cfg.Logging.FilePath)
				assert.Equal(t, "stdout", cfg.Telemetry.TraceExporter)
				assert.Equal(t, "Contextualized_", cfg.Export.Prefix)
			},
		},
		{
			name: "environment wins over file",
			env:  map[string]string{"SWINGCTX_LOGGING_LEVEL": "error"},
			file: "logging:\n  level: debug\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "error", cfg.Logging.Level)
			},
		},
		{
			name:    "invalid level rejected",
			env:     map[string]string{"SWINGCTX_LOGGING_LEVEL": "verbose"},
			wantErr: true,
		},
		{
			name:    "stdout log output rejected",
			env:     map[string]string{"SWINGCTX_LOGGING_OUTPUT": "stdout"},
			wantErr: true,
		},
		{
			name:    "prefix with separator rejected",
			file:    "export:\n  prefix: out/Contextualized_\n",
			wantErr: true,
		},
		{
			name:    "metrics file must be a .prom file",
			env:     map[string]string{"SWINGCTX_TELEMETRY_METRICS_TEXTFILE": "/tmp/metrics.txt"},
			wantErr: true,
		},
		{
			name:    "malformed bool",
			env:     map[string]string{"SWINGCTX_EXPORT_BOM_PREFIX": "sometimes"},
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "logging: [unclosed\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if tt.file != "" {
				t.Setenv(ConfigFileEnv, writeConfigFile(t, tt.file))
			}

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestGetConfigFilePath(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	assert.Equal(t, "", getConfigFilePath())

	require.NoError(t, os.MkdirAll("configs", 0755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "swingctx.yaml"), []byte("{}"), 0644))
	assert.Equal(t, "configs/swingctx.yaml", getConfigFilePath())

	require.NoError(t, os.WriteFile("swingctx.yaml", []byte("{}"), 0644))
	assert.Equal(t, "swingctx.yaml", getConfigFilePath())

	t.Setenv(ConfigFileEnv, "/explicit.yaml")
	assert.Equal(t, "/explicit.yaml", getConfigFilePath())
}
