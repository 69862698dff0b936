package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by FromEnv.
const (
	EnvFlattenToZones  = "LOWER_FLATTEN_TO_ZONES"
	EnvKeepSpecialDays = "LOWER_KEEP_SPECIAL_DAYS"
	EnvExcludeReports  = "LOWER_EXCLUDE_REPORTS"
)

// Options is the configuration surface consumed by the lowering pass.
type Options struct {
	// FlattenCategoriesToZones targets zones (and zone lists) instead of
	// spaces (and space lists) as the unit of load attachment.
	FlattenCategoriesToZones bool `yaml:"flatten_categories_to_zones"`
	// KeepSecondaryCalendarOverrides translates special-day calendar entries.
	KeepSecondaryCalendarOverrides bool `yaml:"keep_secondary_calendar_overrides"`
	// ExcludeOptionalReportCategories suppresses optional output records.
	ExcludeOptionalReportCategories []ReportCategory `yaml:"exclude_optional_report_categories,omitempty"`
}

// Default returns the default options: zone flattening on, special days off,
// every optional report kept.
func Default() Options {
	return Options{
		FlattenCategoriesToZones: true,
	}
}

// Excludes reports whether the category is suppressed.
func (o Options) Excludes(c ReportCategory) bool {
	return slices.Contains(o.ExcludeOptionalReportCategories, c)
}

// LoadFile loads options from a YAML file on top of the defaults.
func LoadFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read options file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML options on top of the defaults.
func Parse(data []byte) (Options, error) {
	opts := Default()

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("failed to parse options YAML: %w", err)
	}

	return opts, nil
}

// Marshal serializes options to YAML.
func Marshal(opts Options) ([]byte, error) {
	return yaml.Marshal(opts)
}

// FromEnv applies environment overrides to opts. A .env file in the working
// directory is loaded first when present.
func FromEnv(opts Options) (Options, error) {
	_ = godotenv.Load()

	return applyEnv(opts, os.Getenv)
}

func applyEnv(opts Options, getenv func(string) string) (Options, error) {
	if raw := strings.TrimSpace(getenv(EnvFlattenToZones)); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return Options{}, fmt.Errorf("invalid %s: %w", EnvFlattenToZones, err)
		}

		opts.FlattenCategoriesToZones = v
	}

	if raw := strings.TrimSpace(getenv(EnvKeepSpecialDays)); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return Options{}, fmt.Errorf("invalid %s: %w", EnvKeepSpecialDays, err)
		}

		opts.KeepSecondaryCalendarOverrides = v
	}

	if raw, ok := lookup(getenv, EnvExcludeReports); ok {
		cats, err := ParseReportCategories(raw)
		if err != nil {
			return Options{}, fmt.Errorf("invalid %s: %w", EnvExcludeReports, err)
		}

		opts.ExcludeOptionalReportCategories = cats
	}

	return opts, nil
}

func lookup(getenv func(string) string, key string) (string, bool) {
	v := getenv(key)
	return v, v != ""
}
