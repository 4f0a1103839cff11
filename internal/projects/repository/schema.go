package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema creates the project table. It is safe to run repeatedly.
const Schema = `
CREATE TABLE IF NOT EXISTS project (
    project_id      SERIAL PRIMARY KEY,
    project_name    VARCHAR(128),
    estimated_hours NUMERIC(7, 2),
    actual_hours    NUMERIC(7, 2),
    difficulty      INTEGER,
    notes           TEXT
);

CREATE INDEX IF NOT EXISTS idx_project_name ON project(project_name);
`

// Migrate applies Schema inside a single transaction.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", classify(err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
