package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"model-lowering/internal/config"
)

// exitError carries a specific process exit code.
type exitError struct {
	code    int
	message string
}

func (e *exitError) Error() string {
	return e.message
}

// cliConfig is the parsed command line.
type cliConfig struct {
	modelPath   string
	optionsPath string
	outPath     string
	sqlitePath  string
	strict      bool
	dump        bool
	logLevel    string
	logFormat   string
	// overrides are applied after the options file and the environment.
	overrides []func(*config.Options)
}

// parseArgs processes command-line arguments. The boolean reports whether
// the program should exit cleanly without doing any work.
func parseArgs(args []string, output io.Writer) (*cliConfig, bool, error) {
	fs := flag.NewFlagSet("model-lower", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.Usage = func() {
		fmt.Fprint(output, `
model-lower - lowers a building model into flat simulation input records.

Usage:
  model-lower [options] [MODEL_PATH]

Arguments:
  MODEL_PATH
    Path to a YAML source model.

Options:
`)
		fs.PrintDefaults()
	}

	cfg := &cliConfig{}

	fs.StringVar(&cfg.modelPath, "model", "", "Path to the YAML source model.")
	fs.StringVar(&cfg.optionsPath, "options", "", "Path to a YAML options file.")
	fs.StringVar(&cfg.outPath, "out", "", "Write records to this file instead of stdout.")
	fs.StringVar(&cfg.sqlitePath, "sqlite", "", "Also write records and diagnostics to this SQLite database.")
	fs.BoolVar(&cfg.strict, "strict", false, "Exit with status 1 when any error diagnostic is reported.")
	fs.BoolVar(&cfg.dump, "dump", false, "Dump the translation coverage to the output after the records.")
	fs.StringVar(&cfg.logLevel, "log-level", "warn", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")
	fs.StringVar(&cfg.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")

	fs.Func("flatten-to-zones", "Override the zone flattening option (true or false).", func(s string) error {
		v, err := parseBool(s)
		if err != nil {
			return err
		}

		cfg.overrides = append(cfg.overrides, func(o *config.Options) {
			o.FlattenCategoriesToZones = v
		})

		return nil
	})
	fs.Func("keep-special-days", "Override the special days option (true or false).", func(s string) error {
		v, err := parseBool(s)
		if err != nil {
			return err
		}

		cfg.overrides = append(cfg.overrides, func(o *config.Options) {
			o.KeepSecondaryCalendarOverrides = v
		})

		return nil
	})
	fs.Func("exclude-reports", "Comma separated optional report categories to suppress.", func(s string) error {
		cats, err := config.ParseReportCategories(s)
		if err != nil {
			return err
		}

		cfg.overrides = append(cfg.overrides, func(o *config.Options) {
			o.ExcludeOptionalReportCategories = cats
		})

		return nil
	})

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}

		return nil, false, &exitError{code: 2, message: err.Error()}
	}

	if cfg.modelPath == "" && fs.NArg() > 0 {
		cfg.modelPath = fs.Arg(0)
	}

	if cfg.modelPath == "" {
		fs.Usage()
		return nil, true, nil
	}

	cfg.logFormat = strings.ToLower(cfg.logFormat)
	if cfg.logFormat != "text" && cfg.logFormat != "json" {
		return nil, false, &exitError{code: 2, message: "invalid log-format: must be 'text' or 'json'"}
	}

	cfg.logLevel = strings.ToLower(cfg.logLevel)
	switch cfg.logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &exitError{code: 2, message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	return cfg, false, nil
}

// options resolves the lowering options: defaults, then the options file,
// then the environment, then command line overrides.
func (c *cliConfig) options() (config.Options, error) {
	opts := config.Default()

	if c.optionsPath != "" {
		var err error

		opts, err = config.LoadFile(c.optionsPath)
		if err != nil {
			return config.Options{}, err
		}
	}

	opts, err := config.FromEnv(opts)
	if err != nil {
		return config.Options{}, err
	}

	for _, apply := range c.overrides {
		apply(&opts)
	}

	return opts, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}

	return false, fmt.Errorf("invalid boolean %q", s)
}
