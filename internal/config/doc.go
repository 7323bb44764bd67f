// Package config provides configuration management for swingctx.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. A YAML configuration file
//	3. Default values (lowest priority)
//
// With no file and no environment the defaults reproduce the plain behavior of
// the tool: info-level JSON logs on stderr, "Contextualized_" output prefix,
// no BOM, no tracing and no metrics file.
//
// # Environment Variables
//
// All environment variables use the SWINGCTX_ prefix:
//
//	SWINGCTX_LOGGING_LEVEL=debug
//	SWINGCTX_LOGGING_OUTPUT=both
//	SWINGCTX_LOGGING_FILE_PATH=logs/swingctx.log
//	SWINGCTX_EXPORT_BOM_PREFIX=true
//	SWINGCTX_TELEMETRY_TRACE_EXPORTER=stdout
//	SWINGCTX_TELEMETRY_METRICS_TEXTFILE=/var/lib/node_exporter/swingctx.prom
//
// # Configuration File
//
// The file is taken from SWINGCTX_CONFIG, or else the first of swingctx.yaml
// and configs/swingctx.yaml found in the working directory:
//
//	logging:
//	  level: debug
//	  output: both
//	  file_path: logs/swingctx.log
//	export:
//	  bom_prefix: true
//	telemetry:
//	  trace_exporter: stdout
//
// Validation uses go-playground/validator struct tags; Load rejects values
// outside the allowed sets.
package config
