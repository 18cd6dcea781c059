// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tomtom215/parkingreport/internal/config"
	"github.com/tomtom215/parkingreport/internal/database"
	"github.com/tomtom215/parkingreport/internal/logging"
	"github.com/tomtom215/parkingreport/internal/metrics"
	"github.com/tomtom215/parkingreport/internal/report"
)

const defaultCommand = "report"

// errUsage marks command line errors; they exit with status 2 instead of a fatal log.
var errUsage = errors.New("usage error")

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	logCfg.Caller = cfg.Logging.Caller
	logging.Init(logCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command, args := splitCommand(os.Args[1:])
	runErr := run(ctx, cfg, command, args, os.Stdout)

	if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logging.Warn().Err(err).Msg("Failed to write metrics textfile")
	}

	if runErr != nil {
		stop()
		if errors.Is(runErr, errUsage) {
			fmt.Fprintln(os.Stderr, runErr)
			usage(os.Stderr)
			os.Exit(2)
		}
		logging.Fatal().Err(runErr).Str("command", command).Msg("Command failed")
	}
}

// splitCommand separates the subcommand from its flags. A missing subcommand,
// or one that starts with a dash, selects the report command.
func splitCommand(args []string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return defaultCommand, args
	}
	return args[0], args[1:]
}

func run(ctx context.Context, cfg *config.Config, command string, args []string, stdout io.Writer) error {
	switch command {
	case "report":
		return runReport(ctx, cfg, args, stdout)
	case "load":
		return runLoad(ctx, cfg, args)
	case "list":
		return runList(stdout)
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

// reportFlags are command line overrides for the report section of the config.
type reportFlags struct {
	metrics string
	format  string
	output  string
	scale   float64
	console bool
}

func parseReportFlags(cfg *config.ReportConfig, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	f := reportFlags{format: cfg.Format, output: cfg.OutputDir, scale: cfg.Scale, console: cfg.Console}
	fs.StringVar(&f.metrics, "metrics", strings.Join(cfg.Metrics, ","), "comma-separated metric IDs (default: all)")
	fs.StringVar(&f.format, "format", f.format, "image format: png or svg")
	fs.StringVar(&f.output, "out", f.output, "output directory")
	fs.Float64Var(&f.scale, "scale", f.scale, "figure size multiplier")
	fs.BoolVar(&f.console, "console", f.console, "echo tabular metrics to stdout")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}

	cfg.Metrics = splitList(f.metrics)
	cfg.Format = f.format
	cfg.OutputDir = f.output
	cfg.Scale = f.scale
	cfg.Console = f.console
	return nil
}

func runReport(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer) error {
	if err := parseReportFlags(&cfg.Report, args); err != nil {
		return err
	}

	log := logging.WithComponent("cli")
	log.Info().
		Str("database", cfg.Database.Path).
		Str("output_dir", cfg.Report.OutputDir).
		Str("format", cfg.Report.Format).
		Float64("scale", cfg.Report.Scale).
		Strs("metrics", cfg.Report.Metrics).
		Msg("Starting report run")

	sink, err := report.NewDirSink(cfg.Report.OutputDir)
	if err != nil {
		return err
	}

	opts := []report.Option{
		report.WithFormat(cfg.Report.Format),
		report.WithScale(cfg.Report.Scale),
		report.WithSource(cfg.Database.Path),
	}
	if cfg.Report.Console {
		opts = append(opts, report.WithConsole(stdout))
	}
	gen := report.New(database.New(&cfg.Database), sink, opts...)

	var manifest *report.Manifest
	if len(cfg.Report.Metrics) > 0 {
		manifest, err = gen.RunSelected(ctx, cfg.Report.Metrics)
	} else {
		manifest, err = gen.RunFullReport(ctx)
	}
	if err != nil {
		return err
	}

	log.Info().
		Str("run_id", manifest.RunID).
		Int("artifacts", len(manifest.Artifacts)).
		Dur("duration", manifest.FinishedAt.Sub(manifest.StartedAt)).
		Str("output_dir", sink.Dir()).
		Msg("Report complete")
	return nil
}

func runLoad(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	csvDir := fs.String("csv-dir", cfg.Ingest.CSVDir, "directory holding the source CSV files")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if *csvDir == "" {
		return fmt.Errorf("%w: load needs -csv-dir or CSV_DIR", errUsage)
	}

	helper := database.New(&cfg.Database)
	start := time.Now()
	if err := helper.BulkLoad(ctx, *csvDir); err != nil {
		return err
	}

	tables := make([]string, len(database.BulkSources))
	for i, src := range database.BulkSources {
		tables[i] = src.Table
	}
	counts, err := helper.TableCounts(ctx, tables...)
	if err != nil {
		return err
	}

	log := logging.WithComponent("cli")
	event := log.Info().Dur("duration", time.Since(start))
	for _, table := range tables {
		event = event.Int64(table, counts[table])
	}
	event.Msg("Bulk load complete")
	return nil
}

func runList(w io.Writer) error {
	for _, m := range report.Catalog() {
		if _, err := fmt.Fprintf(w, "%-3s %-11s %s\n", m.ID, m.Kind, m.Title); err != nil {
			return err
		}
	}
	return nil
}

// splitList parses a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage: parkingreport [command] [flags]

Commands:
  report   render the gold-table report (default)
             -metrics a,b,c  -format png|svg  -out DIR  -scale N  -console
  load     bulk load CSV files into DuckDB
             -csv-dir DIR
  list     print the metric catalog
  help     show this message
`)
}
