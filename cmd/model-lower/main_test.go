package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelYAML = `
zones:
  - name: Zone 1
spaces:
  - name: Space 1
    zone: Zone 1
    floor_area: 50
    volume: 150
`

func writeModel(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRun_WritesRecords(t *testing.T) {
	var out, logs bytes.Buffer

	err := run(context.Background(), &out, &logs, []string{writeModel(t, modelYAML)})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Zone,\n")
	assert.Contains(t, out.String(), "  Zone 1,")
	assert.Contains(t, out.String(), "Building,\n")
}

func TestRun_OutFileAndSQLite(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.idf")
	dbPath := filepath.Join(dir, "out.db")

	var out, logs bytes.Buffer

	err := run(context.Background(), &out, &logs, []string{
		"-model", writeModel(t, modelYAML),
		"-out", outPath,
		"-sqlite", dbPath,
		"-flatten-to-zones", "false",
	})
	require.NoError(t, err)
	assert.Empty(t, out.String())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Zone,\n")

	_, err = os.Stat(dbPath)
	require.NoError(t, err)
}

func TestRun_Strict(t *testing.T) {
	model := modelYAML + `
loads:
  - name: Stray Lights
    kind: Lights
    value: 100
`

	var out, logs bytes.Buffer

	require.NoError(t, run(context.Background(), &out, &logs, []string{writeModel(t, model)}))

	out.Reset()
	err := run(context.Background(), &out, &logs, []string{"-strict", writeModel(t, model)})
	require.Error(t, err)

	var exitErr *exitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.code)
	assert.Contains(t, exitErr.message, "Stray Lights")
}

func TestRun_LoadError(t *testing.T) {
	var out, logs bytes.Buffer

	err := run(context.Background(), &out, &logs, []string{filepath.Join(t.TempDir(), "absent.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read model file")
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantExit bool
		wantCode int
	}{
		{name: "no model prints usage", args: nil, wantExit: true},
		{name: "help", args: []string{"-h"}, wantExit: true},
		{name: "bad log format", args: []string{"-log-format", "xml", "m.yaml"}, wantCode: 2},
		{name: "bad log level", args: []string{"-log-level", "loud", "m.yaml"}, wantCode: 2},
		{name: "bad boolean", args: []string{"-flatten-to-zones", "maybe", "m.yaml"}, wantCode: 2},
		{name: "bad report category", args: []string{"-exclude-reports", "nope", "m.yaml"}, wantCode: 2},
		{name: "positional model", args: []string{"m.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			cfg, exit, err := parseArgs(tt.args, &out)
			if tt.wantCode != 0 {
				var exitErr *exitError
				require.True(t, errors.As(err, &exitErr))
				assert.Equal(t, tt.wantCode, exitErr.code)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantExit, exit)

			if !exit {
				assert.Equal(t, "m.yaml", cfg.modelPath)
			}
		})
	}
}

func TestOptionsOverrides(t *testing.T) {
	cfg, _, err := parseArgs([]string{
		"-flatten-to-zones", "false",
		"-keep-special-days", "yes",
		"m.yaml",
	}, &bytes.Buffer{})
	require.NoError(t, err)

	opts, err := cfg.options()
	require.NoError(t, err)
	assert.False(t, opts.FlattenCategoriesToZones)
	assert.True(t, opts.KeepSecondaryCalendarOverrides)
}
