package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yamlv2 "gopkg.in/yaml.v2"

	"github.com/rxtech-lab/argo-monthly/internal/config"
	"github.com/rxtech-lab/argo-monthly/internal/datasource"
	"github.com/rxtech-lab/argo-monthly/internal/logger"
	"github.com/rxtech-lab/argo-monthly/internal/monthly"
	"github.com/rxtech-lab/argo-monthly/internal/render"
	"github.com/rxtech-lab/argo-monthly/internal/report"
	"github.com/rxtech-lab/argo-monthly/internal/types"
	"github.com/rxtech-lab/argo-monthly/internal/version"
)

// runConfig assembles the run configuration from --config or from the
// inline flags. Inline flags override nothing when a config file is
// given; the two modes are exclusive by design.
func runConfig(cmd *cli.Command) (*config.Config, error) {
	if path := cmd.String("config"); path != "" {
		return config.Load(path)
	}

	cfg := config.EmptyConfig()
	cfg.Input = cmd.String("input")
	cfg.OutputDir = cmd.String("out")
	cfg.Workers = int(cmd.Int("workers"))
	cfg.LogLevel = cmd.String("log-level")
	cfg.Months = cmd.StringSlice("months")

	if fields := cmd.StringSlice("fields"); len(fields) > 0 {
		cfg.Fields = fields
	}

	if writers := cmd.StringSlice("writers"); len(writers) > 0 {
		cfg.Writers = writers
	}

	if start := cmd.String("start"); start != "" {
		cfg.Start = optional.Some(start)
	}

	if end := cmd.String("end"); end != "" {
		cfg.End = optional.Some(end)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadSeries drains the data source into memory. The core works on the
// in-memory slice; the file is read exactly once.
func loadSeries(input string, log *logger.Logger) ([]types.DailyBar, error) {
	source, err := datasource.NewDataSource("", log)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	if err := source.Initialize(input); err != nil {
		return nil, err
	}

	var series []types.DailyBar

	var readErr error

	source.ReadAll(optional.None[time.Time](), optional.None[time.Time]())(func(bar types.DailyBar, err error) bool {
		if err != nil {
			readErr = err

			return false
		}

		series = append(series, bar)

		return true
	})

	if readErr != nil {
		return nil, readErr
	}

	return series, nil
}

// buildWriters instantiates the enabled sinks. File-backed sinks get
// run-id-stamped default names inside the output directory.
func buildWriters(cfg *config.Config, runID string) []report.RowWriter {
	var writers []report.RowWriter

	for _, name := range cfg.Writers {
		switch name {
		case config.WriterText:
			writers = append(writers, report.NewTextWriter(os.Stdout, "-"))
		case config.WriterCSV:
			writers = append(writers, report.NewCSVWriter(
				filepath.Join(cfg.OutputDir, fmt.Sprintf("monthly-summary-%s.csv", runID))))
		case config.WriterXLSX:
			writers = append(writers, render.NewWorkbookWriter(
				filepath.Join(cfg.OutputDir, fmt.Sprintf("monthly-report-%s.xlsx", runID))))
		}
	}

	return writers
}

// runAction is the core logic of the run command: load the series,
// build the request list, compute the rows and fan them out to the
// enabled writers.
func runAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := runConfig(cmd)
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	log, err := logger.NewLoggerWithLevel(level)
	if err != nil {
		return err
	}
	defer log.Sync()

	runID := uuid.New().String()
	log.Info("Starting monthly report run",
		zap.String("run_id", runID),
		zap.String("input", cfg.Input),
		zap.String("version", version.GetVersion()))

	series, err := loadSeries(cfg.Input, log)
	if err != nil {
		return err
	}

	requests, err := buildRequests(series, cfg)
	if err != nil {
		return err
	}

	log.Info("Computing report",
		zap.Int("bars", len(series)),
		zap.Int("requests", len(requests)),
		zap.Int("workers", cfg.Workers))

	rows, err := monthly.ReportParallel(ctx, series, requests, cfg.Workers)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	writers := buildWriters(cfg, runID)
	for _, w := range writers {
		if err := w.Initialize(); err != nil {
			return err
		}
		defer w.Close()
	}

	bar := progressbar.NewOptions(len(rows),
		progressbar.OptionSetDescription("Writing report"),
		progressbar.OptionShowCount())

	for _, row := range rows {
		for _, w := range writers {
			if err := w.Write(row); err != nil {
				return err
			}
		}

		_ = bar.Add(1)
	}

	for _, w := range writers {
		outputPath, err := w.Finalize()
		if err != nil {
			return err
		}

		if outputPath != "-" {
			log.Info("Report written", zap.String("path", outputPath))
		}
	}

	return nil
}

// schemaAction writes the config JSON schema and, when absent, a sample
// YAML config next to it.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	cfg := config.EmptyConfig()

	schemaJSON, err := cfg.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	outDir := cmd.String("out")
	schemaName := "monthly-report-config.json"
	schemaPath := filepath.Join(outDir, schemaName)
	samplePath := filepath.Join(outDir, "monthly-report-config.yaml")

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0o644); err != nil {
		return fmt.Errorf("failed to write schema to file: %w", err)
	}

	// Write a sample config only if one does not already exist.
	if _, err := os.Stat(samplePath); os.IsNotExist(err) {
		yamlBytes, err := yamlv2.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal sample config to yaml: %w", err)
		}

		yamlBytes = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), yamlBytes...)
		if err := os.WriteFile(samplePath, yamlBytes, 0o644); err != nil {
			return fmt.Errorf("failed to write sample config to file: %w", err)
		}

		log.Printf("Sample config successfully generated at %s", samplePath)
	}

	log.Printf("Schema successfully generated at %s", schemaPath)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "monthly",
		Usage:   "Compute calendar-month statistics over daily OHLCV history",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a monthly report over an input file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to a YAML run config; replaces the inline flags",
					},
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "Path to the daily OHLCV history (.csv or .parquet)",
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output directory for report files",
						Value:   ".",
					},
					&cli.StringSliceFlag{
						Name:    "fields",
						Aliases: []string{"f"},
						Usage:   "Fields to average (open, high, low, close, volume); defaults to all",
					},
					&cli.StringSliceFlag{
						Name:    "months",
						Aliases: []string{"m"},
						Usage:   "Explicit months in `YYYY-MM` form; empty covers the whole series",
					},
					&cli.StringFlag{
						Name:  "start",
						Usage: "First month in `YYYY-MM` form when --months is empty",
					},
					&cli.StringFlag{
						Name:  "end",
						Usage: "Last month in `YYYY-MM` form when --months is empty",
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Parallel report workers; 0 or 1 runs sequentially",
						Value:   0,
					},
					&cli.StringSliceFlag{
						Name:  "writers",
						Usage: fmt.Sprintf("Output sinks to enable (%s, %s, %s); defaults to all", config.WriterText, config.WriterCSV, config.WriterXLSX),
					},
					&cli.StringFlag{
						Name:  "log-level",
						Usage: "zap log level such as debug or warn",
					},
				},
				Action: runAction,
			},
			{
				Name:  "schema",
				Usage: "Generate the config JSON schema and a sample config",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Directory the schema and sample config are written into",
						Value:   "./config",
					},
				},
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
