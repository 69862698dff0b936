package export

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-lowering/internal/diagnostic"
	"model-lowering/internal/target"
)

func newTestWriter(t *testing.T) *SQLiteWriter {
	t.Helper()

	w, err := OpenSQLite(filepath.Join(t.TempDir(), "out.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		w.Close()
	})

	return w
}

func TestSQLiteWrite(t *testing.T) {
	ctx := context.Background()
	w := newTestWriter(t)

	s := target.NewStore()
	s.Append(target.KindZone, "Zone 1", target.F("Name", target.S("Zone 1")), target.F("Multiplier", target.I(1)))
	s.Append(target.KindZone, "Zone 2", target.F("Name", target.S("Zone 2")))
	s.Append(target.KindZoneList, "Office", target.F("Zone 1 Name", target.R("Zone 1")))

	diags := diagnostic.New(nil)
	diags.AddWarning("ambiguous_parent", "picked Zone 1", "Lights", "Office Lights")

	require.NoError(t, w.Write(ctx, s, diags))

	counts, err := w.CountByKind(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Zone": 2, "ZoneList": 1}, counts)

	var number float64
	require.NoError(t, w.db.QueryRowContext(ctx,
		`SELECT number FROM fields WHERE record_id = 0 AND name = 'Multiplier'`).Scan(&number))
	assert.InDelta(t, 1, number, 1e-12)

	var code string
	require.NoError(t, w.db.QueryRowContext(ctx, `SELECT code FROM diagnostics`).Scan(&code))
	assert.Equal(t, "ambiguous_parent", code)
}

func TestSQLiteWriteReplaces(t *testing.T) {
	ctx := context.Background()
	w := newTestWriter(t)

	first := target.NewStore()
	first.Append(target.KindZone, "Zone 1")
	require.NoError(t, w.Write(ctx, first, nil))

	second := target.NewStore()
	second.Append(target.KindSpace, "Space 1")
	require.NoError(t, w.Write(ctx, second, nil))

	counts, err := w.CountByKind(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Space": 1}, counts)
}
