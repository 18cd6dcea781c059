// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"Catalog Error: Table with name gold_x does not exist!", "catalog"},
		{"Parser Error: syntax error at or near \"SELEC\"", "parser"},
		{"Binder Error: Referenced column \"fee\" not found", "binder"},
		{"IO Error: Could not set lock on file", "connection"},
		{"context deadline exceeded", "timeout"},
		{"something else", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := classifyError(errors.New(tt.msg)); got != tt.want {
				t.Errorf("classifyError(%q) = %q, want %q", tt.msg, got, tt.want)
			}
		})
	}
}

func TestRecordQuery(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("query", "catalog"))

	RecordQuery("query", 5*time.Millisecond, nil)
	RecordQuery("query", 5*time.Millisecond, errors.New("Catalog Error: missing"))

	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("query", "catalog"))
	if after-before != 1 {
		t.Errorf("expected catalog error counter to increase by 1, got %v", after-before)
	}
}

func TestRecordRetry(t *testing.T) {
	before := testutil.ToFloat64(DBQueryRetries.WithLabelValues("exec"))
	RecordRetry("exec")
	if got := testutil.ToFloat64(DBQueryRetries.WithLabelValues("exec")) - before; got != 1 {
		t.Errorf("expected retry counter delta 1, got %v", got)
	}
}

func TestRecordRender(t *testing.T) {
	RecordRender("zz", "bar", time.Millisecond, 2048, nil)
	if got := testutil.ToFloat64(ArtifactBytes.WithLabelValues("zz")); got != 2048 {
		t.Errorf("ArtifactBytes = %v, want 2048", got)
	}

	before := testutil.ToFloat64(RenderErrors.WithLabelValues("zz"))
	RecordRender("zz", "bar", time.Millisecond, 0, errors.New("boom"))
	if got := testutil.ToFloat64(RenderErrors.WithLabelValues("zz")) - before; got != 1 {
		t.Errorf("expected render error delta 1, got %v", got)
	}
	if got := testutil.ToFloat64(ArtifactBytes.WithLabelValues("zz")); got != 2048 {
		t.Errorf("failed render must not reset artifact size, got %v", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	if err := WriteTextfile(""); err != nil {
		t.Fatalf("empty path should be a no-op, got %v", err)
	}

	RecordReport(time.Second, nil)

	path := filepath.Join(t.TempDir(), "parkingreport.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "parkingreport_run_duration_seconds") {
		t.Errorf("textfile missing run duration metric:\n%s", data)
	}
}
