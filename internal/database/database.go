// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/parkingreport/internal/config"
	"github.com/tomtom215/parkingreport/internal/logging"
	"github.com/tomtom215/parkingreport/internal/metrics"
)

// Access modes accepted by DuckDB's access_mode option.
const (
	AccessReadOnly  = "read_only"
	AccessReadWrite = "read_write"
)

// Conn is the subset of *sql.DB used for one attempt.
type Conn interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Close() error
}

// Opener opens a connection for a DuckDB data source name.
type Opener func(dsn string) (Conn, error)

// OpenDuckDB is the default Opener.
func OpenDuckDB(dsn string) (Conn, error) {
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, err
	}
	// One attempt runs one statement at a time; never fan out to a pool.
	db.SetMaxOpenConns(1)
	return db, nil
}

// Helper executes SQL against the configured DuckDB file using one short-lived
// connection per attempt.
type Helper struct {
	cfg  *config.DatabaseConfig
	open Opener
}

// Option configures a Helper.
type Option func(*Helper)

// WithOpener replaces the connection opener, typically with a test double.
func WithOpener(open Opener) Option {
	return func(h *Helper) {
		h.open = open
	}
}

// New creates a Helper for cfg. No connection is opened until the first call.
func New(cfg *config.DatabaseConfig, opts ...Option) *Helper {
	h := &Helper{
		cfg:  cfg,
		open: OpenDuckDB,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Path returns the database file path.
func (h *Helper) Path() string {
	return h.cfg.Path
}

// DSN builds the connection string for the given access mode.
func (h *Helper) DSN(accessMode string) string {
	threads := h.cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	return fmt.Sprintf("%s?access_mode=%s&threads=%d&max_memory=%s",
		h.cfg.Path, accessMode, threads, h.cfg.MaxMemory)
}

// Query executes sqlText exactly as given and returns the full result set.
// The text is trusted: no parameter binding or escaping is applied.
func (h *Helper) Query(ctx context.Context, sqlText string) (*Table, error) {
	var table *Table
	err := h.withRetry(ctx, "query", h.accessMode(), sqlText, func(ctx context.Context, conn Conn) error {
		rows, err := conn.QueryContext(ctx, sqlText)
		if err != nil {
			return err
		}
		defer closeWithLog(rows, "result rows")

		t, err := scanTable(rows)
		if err != nil {
			return err
		}
		table = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.DBRowsMaterialized.Add(float64(table.Len()))
	return table, nil
}

// QueryValue runs a single-value query and returns the value of column in
// the first row.
func (h *Helper) QueryValue(ctx context.Context, sqlText, column string) (any, error) {
	table, err := h.Query(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	if table.Len() == 0 {
		return nil, ErrEmptyResult
	}
	return table.Value(0, column)
}

// Exec runs administrative statements in order on one read-write connection.
// A failure in any statement retries the whole batch once.
func (h *Helper) Exec(ctx context.Context, statements ...string) error {
	if err := h.ensureDir(); err != nil {
		return err
	}

	batch := joinStatements(statements)
	return h.withRetry(ctx, "exec", AccessReadWrite, batch, func(ctx context.Context, conn Conn) error {
		for i, stmt := range statements {
			if _, err := conn.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("statement %d: %w", i+1, err)
			}
		}
		return nil
	})
}

func (h *Helper) accessMode() string {
	if h.cfg.AccessMode == "" {
		return AccessReadOnly
	}
	return h.cfg.AccessMode
}

// ensureDir creates the database's parent directory for writes.
// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
func (h *Helper) ensureDir() error {
	dir := filepath.Dir(h.cfg.Path)
	if dir == "" || dir == "." || h.cfg.Path == ":memory:" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}
	return nil
}

// withRetry runs fn on a fresh connection, and once more on another fresh
// connection if the first attempt fails. The original error wins.
func (h *Helper) withRetry(ctx context.Context, operation, accessMode, sqlText string, fn func(context.Context, Conn) error) error {
	log := logging.CtxWithComponent(ctx, "database").With().Str("operation", operation).Logger()

	firstErr := h.attempt(ctx, operation, accessMode, fn)
	if firstErr == nil {
		return nil
	}

	// A cancelled caller gets no second attempt.
	if ctx.Err() != nil {
		return &QueryError{SQL: sqlText, Attempts: 1, Err: firstErr}
	}

	log.Warn().Err(firstErr).Msg("Query failed, retrying on a fresh connection")
	metrics.RecordRetry(operation)

	retryErr := h.attempt(ctx, operation, accessMode, fn)
	if retryErr == nil {
		log.Info().Msg("Query succeeded on retry")
		return nil
	}

	log.Error().Err(firstErr).AnErr("retry_error", retryErr).Str("sql", sqlText).Msg("Error executing SQL query")
	return &QueryError{SQL: sqlText, Attempts: 2, Err: firstErr, RetryErr: retryErr}
}

// attempt is one open -> fn -> close cycle. The connection is always closed
// before attempt returns.
func (h *Helper) attempt(ctx context.Context, operation, accessMode string, fn func(context.Context, Conn) error) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordQuery(operation, time.Since(start), err)
	}()

	conn, err := h.open(h.DSN(accessMode))
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", h.cfg.Path, err)
	}
	defer closeWithLog(conn, "duckdb connection")

	ctx, cancel := h.attemptContext(ctx)
	defer cancel()

	return fn(ctx, conn)
}

// attemptContext applies the configured per-attempt timeout, if any.
func (h *Helper) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.cfg.QueryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.cfg.QueryTimeout)
}
