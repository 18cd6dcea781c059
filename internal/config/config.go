// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package config

import "time"

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Ingest   IngestConfig   `koanf:"ingest"`
	Report   ReportConfig   `koanf:"report"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatabaseConfig describes the DuckDB file holding the gold tables.
type DatabaseConfig struct {
	Path       string `koanf:"path" validate:"required"`
	AccessMode string `koanf:"access_mode" validate:"oneof=read_only read_write"` // Reports open read_only; bulk load always read_write
	Threads    int    `koanf:"threads" validate:"gte=0"`                          // 0 = use runtime.NumCPU()
	MaxMemory  string `koanf:"max_memory" validate:"required"`

	// QueryTimeout bounds a single attempt. Zero disables the deadline.
	QueryTimeout time.Duration `koanf:"query_timeout" validate:"gte=0"`
}

// IngestConfig controls the one-time CSV bulk load.
type IngestConfig struct {
	CSVDir string `koanf:"csv_dir"`
}

// ReportConfig controls where and how rendered metrics are written.
type ReportConfig struct {
	OutputDir string   `koanf:"output_dir" validate:"required"`
	Format    string   `koanf:"format" validate:"oneof=png svg"`
	Scale     float64  `koanf:"scale" validate:"gt=0,lte=4"` // Multiplier applied to every figure's base size
	Metrics   []string `koanf:"metrics"`                     // Empty = full report
	Console   bool     `koanf:"console"`                     // Echo tabular metrics to stdout
}

// MetricsConfig controls Prometheus metric export for batch runs.
type MetricsConfig struct {
	// Textfile is written after each command for node_exporter's textfile collector.
	Textfile string `koanf:"textfile"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file, a .env
// file and the environment, in increasing priority.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
