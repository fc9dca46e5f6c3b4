package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/brand-insights/internal/config"
	"github.com/jonathan/brand-insights/internal/insights"
	"github.com/jonathan/brand-insights/internal/loader"
	"github.com/jonathan/brand-insights/internal/logger"
	"github.com/jonathan/brand-insights/internal/observability"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app carries what every command needs after startup.
type app struct {
	cfg      config.Config
	log      *logrus.Logger
	closeLog func() error
}

// newApp resolves configuration (file, then defaults, then environment, then
// flags) and builds the logger.
func newApp(cmd *cobra.Command) (*app, error) {
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	cfg := fileCfg.MergeWithDefaults(config.Defaults())
	cfg.ApplyEnv()

	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, closeLog, err := logger.New(cfg.Log.Level, cfg.Log.File, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &app{cfg: cfg, log: log, closeLog: closeLog}, nil
}

func (a *app) close() {
	if err := a.closeLog(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}
}

func (a *app) options() insights.Options {
	return insights.Options{
		ExcludedClusters: a.cfg.ExcludedClusters,
		MaxPathExamples:  a.cfg.MaxPathExamples,
	}
}

// engine loads the dataset and binds an engine to it.
func (a *app) engine() (*insights.Engine, error) {
	ds, err := loader.Load(a.cfg.DataDir, a.cfg.Roster(), a.log)
	if err != nil {
		return nil, err
	}
	a.log.WithFields(logrus.Fields{"version": ds.Version, "data_dir": a.cfg.DataDir}).Debug("dataset loaded")
	return insights.NewEngine(ds, a.options(), a.log), nil
}

// withEngine runs fn against a freshly loaded engine.
func withEngine(cmd *cobra.Command, fn func(*insights.Engine) (any, func(*observability.Printer), error)) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	eng, err := a.engine()
	if err != nil {
		return err
	}
	result, pretty, err := fn(eng)
	if err != nil {
		return err
	}
	if verbose && pretty != nil {
		pretty(observability.NewPrinter(cmd.ErrOrStderr()))
	}
	return writeJSON(cmd, result)
}

// writeJSON writes v as indented JSON to --out, or to stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if outPath == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
