// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package report

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// ManifestName is the artifact written after a successful batch run.
const ManifestName = "manifest.json"

// Artifact records one rendered metric.
type Artifact struct {
	MetricID   string `json:"metric_id"`
	Title      string `json:"title"`
	Kind       Kind   `json:"kind"`
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	Bytes      int64  `json:"bytes"`
	DurationMS int64  `json:"duration_ms"`
}

// Manifest describes a completed report run.
type Manifest struct {
	RunID      string     `json:"run_id"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
	Database   string     `json:"database,omitempty"`
	Format     string     `json:"format"`
	Artifacts  []Artifact `json:"artifacts"`
}

// writeManifest stores m as indented JSON in the sink.
func writeManifest(sink Sink, m *Manifest) (err error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	w, err := sink.Create(ManifestName)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close manifest: %w", cerr)
		}
	}()

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadManifest decodes a manifest written by a previous run.
func ReadManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return &m, nil
}
