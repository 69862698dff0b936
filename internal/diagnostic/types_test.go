package diagnostic

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsOrderAndFilters(t *testing.T) {
	d := New(nil)
	d.AddInfo("created_default", "created default", "Building", "Building")
	d.AddError("missing_parent", "no parent", "Lights", "Lights 1")
	d.AddWarning("zone_unresolved", "no zone", "SubSurface", "Window 1")

	entries := d.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "created_default", entries[0].Code)
	assert.Equal(t, "missing_parent", entries[1].Code)
	assert.Equal(t, "zone_unresolved", entries[2].Code)

	assert.Len(t, d.Errors(), 1)
	assert.Len(t, d.Warnings(), 1)
	assert.Len(t, d.Infos(), 1)
	assert.True(t, d.HasErrors())
	assert.False(t, d.IsValid())
	assert.Len(t, d.WithCode("missing_parent"), 1)
}

func TestDiagnosticsError(t *testing.T) {
	d := New(nil)
	assert.NoError(t, d.Error())

	d.AddError("missing_parent", "no parent", "Lights", "Lights 1")
	err := d.Error()
	require.Error(t, err)
	assert.Equal(t, `[Lights] "Lights 1": [missing_parent] no parent`, err.Error())
}

func TestDiagnosticStringWithAlternatives(t *testing.T) {
	diag := Diagnostic{
		Severity:     DiagnosticError,
		Code:         "ambiguous_parent",
		Message:      "picked Zone A",
		Alternatives: []string{"Zone B", "Zone C"},
	}
	assert.Equal(t, "[ambiguous_parent] picked Zone A (discarded: Zone B, Zone C)", diag.String())
}

func TestDiagnosticsMirrorsToLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	d := New(logger)
	d.AddWarning("reversed_construction", "assigned reverse", "Surface", "Wall 2")

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "code=reversed_construction")
	assert.Contains(t, out, `entity="Wall 2"`)
}

func TestMerge(t *testing.T) {
	a := New(nil)
	a.AddInfo("a", "first", "", "")

	b := New(nil)
	b.AddError("b", "second", "", "")

	a.Merge(b)
	require.Len(t, a.Entries(), 2)
	assert.Equal(t, "b", a.Entries()[1].Code)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(42).String())
}
