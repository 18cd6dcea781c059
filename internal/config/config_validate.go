// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tomtom215/parkingreport/internal/logging"
	"github.com/tomtom215/parkingreport/internal/validation"
)

// maxMemoryPattern matches DuckDB memory limits such as 512MB, 1GB or 1.5GiB.
var maxMemoryPattern = regexp.MustCompile(`^(?i)\d+(\.\d+)?\s*(b|kb|mb|gb|tb|kib|mib|gib|tib)$`)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateDatabase checks the settings that end up in the DuckDB connection string.
func (c *Config) validateDatabase() error {
	if strings.ContainsAny(c.Database.Path, "?&") {
		return fmt.Errorf("DUCKDB_PATH must not contain '?' or '&': %q", c.Database.Path)
	}
	if !maxMemoryPattern.MatchString(c.Database.MaxMemory) {
		return fmt.Errorf("DUCKDB_MAX_MEMORY must be a size such as 512MB or 2GB, got %q", c.Database.MaxMemory)
	}
	return nil
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, disabled; got %q", c.Logging.Level)
	}
	return nil
}
