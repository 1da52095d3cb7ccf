package typetable

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/funvibe/closurecheck/internal/typesystem"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id   TEXT PRIMARY KEY,
	source   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS closure_sigs (
	run_id   TEXT NOT NULL,
	node_id  INTEGER NOT NULL,
	inputs   TEXT NOT NULL,
	output   TEXT NOT NULL,
	abi      TEXT NOT NULL,
	unsafe   INTEGER NOT NULL,
	PRIMARY KEY (run_id, node_id)
);
CREATE TABLE IF NOT EXISTS closure_kinds (
	run_id   TEXT NOT NULL,
	node_id  INTEGER NOT NULL,
	level    TEXT NOT NULL,
	PRIMARY KEY (run_id, node_id)
);`

// NewRunID returns a fresh identifier for one export.
func NewRunID() string {
	return uuid.New().String()
}

// ExportSQLite writes the recorded closure signatures and kinds to the
// database at path under runID. The table must not be mutably borrowed.
func (c *Cell) ExportSQLite(ctx context.Context, path, source, runID string) error {
	if _, err := uuid.Parse(runID); err != nil {
		return fmt.Errorf("invalid run id %q: %w", runID, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tables, release := c.Borrow()
	defer release()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := writeRun(ctx, tx, tables, source, runID); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func writeRun(ctx context.Context, tx *sql.Tx, tables *Tables, source, runID string) error {
	if _, err := tx.ExecContext(ctx, `INSERT INTO runs (run_id, source) VALUES (?, ?)`, runID, source); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	for _, id := range tables.ClosureIDs() {
		sig, _ := tables.ClosureSig(id)
		unsafe := 0
		if sig.Unsafety == typesystem.Unsafe {
			unsafe = 1
		}
		var inputs string
		if len(sig.Inputs) == 1 {
			inputs = sig.Inputs[0].String()
		} else {
			inputs = typesystem.TTuple{Elements: sig.Inputs}.String()
		}
		output := "()"
		if sig.Output != nil {
			output = sig.Output.String()
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO closure_sigs (run_id, node_id, inputs, output, abi, unsafe) VALUES (?, ?, ?, ?, ?, ?)`,
			runID, int64(id), inputs, output, string(sig.ABI), unsafe,
		); err != nil {
			return fmt.Errorf("insert signature for %s: %w", id, err)
		}
		if rec, ok := tables.ClosureKind(id); ok {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO closure_kinds (run_id, node_id, level) VALUES (?, ?, ?)`,
				runID, int64(id), rec.Level.String(),
			); err != nil {
				return fmt.Errorf("insert kind for %s: %w", id, err)
			}
		}
	}
	return nil
}

// ExportedRow is one closure as read back from an export database.
type ExportedRow struct {
	NodeID int64
	Inputs string
	Output string
	ABI    string
	Level  sql.NullString
}

// ReadExport loads the rows written for runID, ordered by node id.
func ReadExport(ctx context.Context, path, runID string) ([]ExportedRow, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT s.node_id, s.inputs, s.output, s.abi, k.level
		FROM closure_sigs s
		LEFT JOIN closure_kinds k ON k.run_id = s.run_id AND k.node_id = s.node_id
		WHERE s.run_id = ?
		ORDER BY s.node_id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExportedRow
	for rows.Next() {
		var r ExportedRow
		if err := rows.Scan(&r.NodeID, &r.Inputs, &r.Output, &r.ABI, &r.Level); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
