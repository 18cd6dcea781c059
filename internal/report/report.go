// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/tomtom215/parkingreport/internal/chart"
	"github.com/tomtom215/parkingreport/internal/database"
	"github.com/tomtom215/parkingreport/internal/logging"
	"github.com/tomtom215/parkingreport/internal/metrics"
)

// ErrUnknownMetric is returned for a metric ID outside the catalog.
var ErrUnknownMetric = errors.New("unknown metric")

// Querier runs one SQL statement and returns the full result.
// *database.Helper satisfies it.
type Querier interface {
	Query(ctx context.Context, sql string) (*database.Table, error)
}

// Report renders catalog metrics to a Sink.
type Report struct {
	query   Querier
	sink    Sink
	console io.Writer
	format  string
	scale   float64
	source  string
	now     func() time.Time
}

// Option configures a Report.
type Option func(*Report)

// WithConsole echoes tabular metrics to w as they are rendered.
func WithConsole(w io.Writer) Option {
	return func(r *Report) {
		r.console = w
	}
}

// WithFormat sets the image format, "png" or "svg".
func WithFormat(format string) Option {
	return func(r *Report) {
		r.format = format
	}
}

// WithScale multiplies every figure's base size.
func WithScale(scale float64) Option {
	return func(r *Report) {
		if scale > 0 {
			r.scale = scale
		}
	}
}

// WithSource records the database the report was built from in the manifest.
func WithSource(source string) Option {
	return func(r *Report) {
		r.source = source
	}
}

// New creates a Report that queries q and writes artifacts to sink.
func New(q Querier, sink Sink, opts ...Option) *Report {
	r := &Report{
		query:  q,
		sink:   sink,
		format: chart.FormatPNG,
		scale:  1,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render renders a single metric by ID.
func (r *Report) Render(ctx context.Context, id string) (*Artifact, error) {
	m, ok := Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, id)
	}
	return r.render(ctx, m)
}

// RunFullReport renders every metric in catalog order.
func (r *Report) RunFullReport(ctx context.Context) (*Manifest, error) {
	return r.RunSelected(ctx, IDs())
}

// RunSelected renders the given metrics in catalog order. Unknown IDs fail
// before anything runs. The first failing metric aborts the run, its error
// wrapped as "metric <id>: ...", and no manifest is written.
func (r *Report) RunSelected(ctx context.Context, ids []string) (manifest *Manifest, err error) {
	selected, err := selectMetrics(ids)
	if err != nil {
		return nil, err
	}
	if err := chart.NewOutput(r.format, 1, 1).Validate(); err != nil {
		return nil, err
	}

	runID := logging.GenerateRunID()
	ctx = logging.ContextWithRunID(ctx, runID)
	log := logging.CtxWithComponent(ctx, "report")
	started := r.now()

	defer func() {
		metrics.RecordReport(r.now().Sub(started), err)
	}()

	log.Info().Int("metrics", len(selected)).Str("format", r.format).Msg("Starting report run")

	manifest = &Manifest{
		RunID:     runID,
		StartedAt: started.UTC(),
		Database:  r.source,
		Format:    r.format,
		Artifacts: make([]Artifact, 0, len(selected)),
	}

	for _, m := range selected {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("metric %s: %w", m.ID, err)
		}
		artifact, err := r.render(ctx, m)
		if err != nil {
			log.Error().Err(err).Str("metric_id", m.ID).Msg("Report run aborted")
			return nil, fmt.Errorf("metric %s: %w", m.ID, err)
		}
		manifest.Artifacts = append(manifest.Artifacts, *artifact)
	}

	manifest.FinishedAt = r.now().UTC()
	if err := writeManifest(r.sink, manifest); err != nil {
		return nil, err
	}

	log.Info().
		Int("artifacts", len(manifest.Artifacts)).
		Dur("duration", manifest.FinishedAt.Sub(manifest.StartedAt)).
		Msg("Report run complete")
	return manifest, nil
}

// selectMetrics resolves ids to catalog order without duplicates.
func selectMetrics(ids []string) ([]Metric, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		m, ok := Lookup(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, id)
		}
		want[m.ID] = true
	}

	selected := make([]Metric, 0, len(want))
	for _, m := range catalog {
		if want[m.ID] {
			selected = append(selected, m)
		}
	}
	return selected, nil
}

// render queries, checks, draws and stores one metric. Nothing is written to
// the sink unless the figure rendered completely.
func (r *Report) render(ctx context.Context, m Metric) (artifact *Artifact, err error) {
	ctx = logging.ContextWithMetricID(ctx, m.ID)
	log := logging.CtxWithComponent(ctx, "report")
	start := r.now()

	var size int64
	defer func() {
		metrics.RecordRender(m.ID, string(m.Kind), r.now().Sub(start), size, err)
	}()

	table, err := r.query.Query(ctx, m.Query)
	if err != nil {
		return nil, err
	}
	if err := table.Require(m.Columns...); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := m.draw(&buf, table, r.format, r.scale); err != nil {
		return nil, err
	}

	name := m.Artifact(r.format)
	if err := r.store(name, buf.Bytes()); err != nil {
		return nil, err
	}
	size = int64(buf.Len())

	if m.Kind == KindTable && r.console != nil {
		if _, err := r.console.Write(buf.Bytes()); err != nil {
			log.Warn().Err(err).Msg("Failed to echo table to console")
		}
	}

	elapsed := r.now().Sub(start)
	log.Info().
		Str("artifact", name).
		Int("rows", table.Len()).
		Int64("bytes", size).
		Dur("duration", elapsed).
		Msg("Metric rendered")

	return &Artifact{
		MetricID:   m.ID,
		Title:      m.Title,
		Kind:       m.Kind,
		Name:       name,
		Rows:       table.Len(),
		Bytes:      size,
		DurationMS: elapsed.Milliseconds(),
	}, nil
}

// store writes one complete artifact to the sink.
func (r *Report) store(name string, data []byte) (err error) {
	w, err := r.sink.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", name, cerr)
		}
	}()

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Select returns the metrics a run over ids would render, in order.
// An empty ids selects the full catalog.
func Select(ids []string) ([]Metric, error) {
	if len(ids) == 0 {
		return Catalog(), nil
	}
	selected, err := selectMetrics(ids)
	if err != nil {
		return nil, err
	}
	return slices.Clip(selected), nil
}
