// Package config provides configuration management for nbastats.
//
// # Configuration Sources
//
// Configuration is assembled in order of increasing precedence:
//
//	1. Default values (Default)
//	2. A YAML file (flag, NBA_CONFIG_FILE, nbastats.yaml, config.yaml, configs/config.yaml)
//	3. Environment variables
//
// # Environment Variables
//
// All environment variables follow the pattern NBA_<SECTION>_<FIELD>:
//
//	NBA_DATA_FILE=data/NBA_Player_Stats.csv
//	NBA_ANALYSIS_TOP_SCORERS=10
//	NBA_ANALYSIS_TRADED_POLICY=prefer-totals
//	NBA_OUTPUT_REPORTS_DIR=data/reports
//	NBA_LOGGING_LEVEL=debug
//	NBA_TELEMETRY_TRACING=true
//
// # Validation
//
// The merged configuration is validated with go-playground/validator
// struct tags; failures are returned as CONFIG application errors naming
// the offending fields.
//
// # Path Management
//
// Paths resolves the configured relative locations against a base
// directory (the working directory for the CLI, a temp dir in tests).
package config
