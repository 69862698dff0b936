package config

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"model-lowering/internal/common"
)

// ErrUnknownReportCategory is returned when a report category name is not recognised.
var ErrUnknownReportCategory = errors.New("unknown report category")

// ReportCategory names an optional group of output records.
type ReportCategory int

const (
	ReportLifeCycleCost ReportCategory = iota + 1
	ReportSQLite
	ReportHTML
	ReportDictionary
)

var reportNames = map[ReportCategory]string{
	ReportLifeCycleCost: "lifecycle-cost",
	ReportSQLite:        "sqlite",
	ReportHTML:          "html",
	ReportDictionary:    "dictionary",
}

// String returns the configuration spelling of the category.
func (c ReportCategory) String() string {
	if s, ok := reportNames[c]; ok {
		return s
	}

	return common.UnknownStr
}

// ParseReportCategory parses a category name case-insensitively.
func ParseReportCategory(s string) (ReportCategory, error) {
	s = strings.TrimSpace(s)
	for c, name := range reportNames {
		if strings.EqualFold(name, s) {
			return c, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownReportCategory, s)
}

// ParseReportCategories parses a comma separated list; blank entries are ignored.
func ParseReportCategories(list string) ([]ReportCategory, error) {
	var out []ReportCategory

	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}

		c, err := ParseReportCategory(part)
		if err != nil {
			return nil, err
		}

		out = append(out, c)
	}

	return out, nil
}

// MarshalYAML writes the category by name.
func (c ReportCategory) MarshalYAML() (any, error) {
	return c.String(), nil
}

// UnmarshalYAML reads the category by name.
func (c *ReportCategory) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	parsed, err := ParseReportCategory(s)
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}
