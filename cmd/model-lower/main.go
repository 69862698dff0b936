// Package main provides the CLI entrypoint for model-lower.
//
// model-lower reads a building model from YAML, lowers it into the flat
// record set of the simulation input format, and writes:
//   - the records as text, to stdout or -out
//   - optionally the records and diagnostics into a SQLite database
//   - the diagnostics to the log
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/davecgh/go-spew/spew"

	"model-lowering/internal/ctxlog"
	"model-lowering/internal/export"
	"model-lowering/internal/lower"
	"model-lowering/internal/modelio"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.message)
			stop()
			os.Exit(exitErr.code)
		}

		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run holds the program logic; main only maps its error to an exit code.
func run(ctx context.Context, outW, logW io.Writer, args []string) error {
	cfg, shouldExit, err := parseArgs(args, outW)
	if err != nil {
		return err
	}

	if shouldExit {
		return nil
	}

	logger := ctxlog.New(cfg.logLevel, cfg.logFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)

	opts, err := cfg.options()
	if err != nil {
		return err
	}

	logger.Debug("Options resolved.",
		"flatten_to_zones", opts.FlattenCategoriesToZones,
		"keep_special_days", opts.KeepSecondaryCalendarOverrides)

	g, err := modelio.LoadFile(cfg.modelPath)
	if err != nil {
		return err
	}

	logger.Info("Model loaded.", "path", cfg.modelPath, "entities", g.Len())

	res, err := lower.NewTranslator(opts).Translate(ctx, g)
	if err != nil {
		return err
	}

	if err := writeRecords(cfg.outPath, outW, res); err != nil {
		return err
	}

	if cfg.dump {
		spew.Fdump(outW, res.Coverage)
	}

	if cfg.sqlitePath != "" {
		if err := writeSQLite(ctx, cfg.sqlitePath, res); err != nil {
			return err
		}

		logger.Info("SQLite output written.", "path", cfg.sqlitePath)
	}

	logger.Info("Lowering finished.",
		"records", res.Store.Len(),
		"errors", len(res.Diagnostics.Errors()),
		"warnings", len(res.Diagnostics.Warnings()))

	if cfg.strict && res.Diagnostics.HasErrors() {
		return &exitError{code: 1, message: res.Diagnostics.Error().Error()}
	}

	return nil
}

func writeRecords(path string, stdout io.Writer, res *lower.Result) error {
	if path == "" {
		return export.WriteText(stdout, res.Store)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}

	if err := export.WriteText(f, res.Store); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file %s: %w", path, err)
	}

	return nil
}

func writeSQLite(ctx context.Context, path string, res *lower.Result) error {
	w, err := export.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer w.Close()

	return w.Write(ctx, res.Store, res.Diagnostics)
}
