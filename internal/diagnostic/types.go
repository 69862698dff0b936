package diagnostic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"model-lowering/internal/common"
)

// Diagnostics holds all diagnostic entries of one lowering run, in the order
// they were reported.
type Diagnostics struct {
	entries []Diagnostic
	logger  *slog.Logger
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// EntityKind names the kind of the source entity involved (if any).
	EntityKind string
	// Entity is the name of the source entity involved (if any).
	Entity string
	// Alternatives lists candidates that were considered and discarded.
	Alternatives []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

func (s DiagnosticSeverity) level() slog.Level {
	switch s {
	case DiagnosticWarning:
		return slog.LevelWarn
	case DiagnosticError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns an empty Diagnostics that mirrors every entry to logger.
// A nil logger disables mirroring.
func New(logger *slog.Logger) *Diagnostics {
	return &Diagnostics{logger: logger}
}

// Add appends a diagnostic entry.
func (d *Diagnostics) Add(diag Diagnostic) {
	d.entries = append(d.entries, diag)

	if d.logger == nil {
		return
	}

	attrs := []slog.Attr{slog.String("code", diag.Code)}
	if diag.EntityKind != "" {
		attrs = append(attrs, slog.String("kind", diag.EntityKind))
	}

	if diag.Entity != "" {
		attrs = append(attrs, slog.String("entity", diag.Entity))
	}

	if len(diag.Alternatives) > 0 {
		attrs = append(attrs, slog.Any("alternatives", diag.Alternatives))
	}

	d.logger.LogAttrs(context.Background(), diag.Severity.level(), diag.Message, attrs...)
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, kind, entity string) {
	d.Add(Diagnostic{
		Severity:   DiagnosticError,
		Code:       code,
		Message:    message,
		EntityKind: kind,
		Entity:     entity,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, kind, entity string) {
	d.Add(Diagnostic{
		Severity:   DiagnosticWarning,
		Code:       code,
		Message:    message,
		EntityKind: kind,
		Entity:     entity,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, kind, entity string) {
	d.Add(Diagnostic{
		Severity:   DiagnosticInfo,
		Code:       code,
		Message:    message,
		EntityKind: kind,
		Entity:     entity,
	})
}

// Entries returns all diagnostics in report order.
func (d *Diagnostics) Entries() []Diagnostic {
	return d.entries
}

// Errors returns the error diagnostics in report order.
func (d *Diagnostics) Errors() []Diagnostic {
	return d.filter(DiagnosticError)
}

// Warnings returns the warning diagnostics in report order.
func (d *Diagnostics) Warnings() []Diagnostic {
	return d.filter(DiagnosticWarning)
}

// Infos returns the info diagnostics in report order.
func (d *Diagnostics) Infos() []Diagnostic {
	return d.filter(DiagnosticInfo)
}

// WithCode returns the diagnostics carrying the given code.
func (d *Diagnostics) WithCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, e := range d.entries {
		if e.Code == code {
			out = append(out, e)
		}
	}

	return out
}

func (d *Diagnostics) filter(sev DiagnosticSeverity) []Diagnostic {
	var out []Diagnostic

	for _, e := range d.entries {
		if e.Severity == sev {
			out = append(out, e)
		}
	}

	return out
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	for _, e := range d.entries {
		if e.Severity == DiagnosticError {
			return true
		}
	}

	return false
}

// Merge appends the entries of another Diagnostics instance.
func (d *Diagnostics) Merge(other *Diagnostics) {
	for _, e := range other.entries {
		d.Add(e)
	}
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors() {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.EntityKind != "" {
		prefix = append(prefix, "["+d.EntityKind+"]")
	}

	if d.Entity != "" {
		prefix = append(prefix, fmt.Sprintf("%q", d.Entity))
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Alternatives) > 0 {
		msg += " (discarded: " + strings.Join(d.Alternatives, ", ") + ")"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
