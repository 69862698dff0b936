package export

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver.
	_ "modernc.org/sqlite"

	"model-lowering/internal/diagnostic"
	"model-lowering/internal/target"
)

// SQLiteWriter stores lowering results in a SQLite database.
type SQLiteWriter struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and prepares its schema.
func OpenSQLite(path string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	w := &SQLiteWriter{db: db}
	if err := w.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return w, nil
}

func (w *SQLiteWriter) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY,
		kind TEXT NOT NULL,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS fields (
		record_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		value_kind TEXT NOT NULL,
		value TEXT NOT NULL,
		number REAL,
		PRIMARY KEY (record_id, position),
		FOREIGN KEY (record_id) REFERENCES records(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS diagnostics (
		id INTEGER PRIMARY KEY,
		severity TEXT NOT NULL,
		code TEXT NOT NULL,
		entity_kind TEXT,
		entity TEXT,
		message TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_kind ON records(kind);
	`

	_, err := w.db.Exec(schema)

	return err
}

// Close closes the database.
func (w *SQLiteWriter) Close() error {
	return w.db.Close()
}

// Write replaces the database content with s and diags.
func (w *SQLiteWriter) Write(ctx context.Context, s *target.Store, diags *diagnostic.Diagnostics) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"fields", "records", "diagnostics"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	recordStmt, err := tx.PrepareContext(ctx, `INSERT INTO records (id, kind, name) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare record statement: %w", err)
	}
	defer recordStmt.Close()

	fieldStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO fields (record_id, position, name, value_kind, value, number)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare field statement: %w", err)
	}
	defer fieldStmt.Close()

	for _, r := range s.All() {
		if _, err := recordStmt.ExecContext(ctx, r.Index(), r.Kind.String(), r.Name); err != nil {
			return fmt.Errorf("failed to insert record %s %q: %w", r.Kind, r.Name, err)
		}

		for i, f := range r.Fields {
			var number sql.NullFloat64
			if f.Value.Kind == target.ValueNumber {
				number = sql.NullFloat64{Float64: f.Value.Num, Valid: true}
			}

			if _, err := fieldStmt.ExecContext(ctx, r.Index(), i, f.Name, valueKind(f.Value.Kind), f.Value.String(), number); err != nil {
				return fmt.Errorf("failed to insert field %q of %q: %w", f.Name, r.Name, err)
			}
		}
	}

	if diags != nil {
		diagStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO diagnostics (id, severity, code, entity_kind, entity, message)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare diagnostic statement: %w", err)
		}
		defer diagStmt.Close()

		for i, d := range diags.Entries() {
			if _, err := diagStmt.ExecContext(ctx, i, d.Severity.String(), d.Code, d.EntityKind, d.Entity, d.Message); err != nil {
				return fmt.Errorf("failed to insert diagnostic %d: %w", i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CountByKind returns the number of stored records of each kind.
func (w *SQLiteWriter) CountByKind(ctx context.Context) (map[string]int, error) {
	rows, err := w.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM records GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)

	for rows.Next() {
		var (
			kind  string
			count int
		)

		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("failed to scan record count: %w", err)
		}

		counts[kind] = count
	}

	return counts, rows.Err()
}

func valueKind(k target.ValueKind) string {
	switch k {
	case target.ValueString:
		return "string"
	case target.ValueNumber:
		return "number"
	case target.ValueRef:
		return "ref"
	default:
		return "empty"
	}
}
