package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrateUp applies every embedded *.up.sql script in name order inside one
// transaction. Scripts are idempotent; there is no version table.
func MigrateUp(db *sql.DB) error {
	return migrate(context.Background(), db, ".up.sql", false)
}

// MigrateDown reverts in reverse name order.
func MigrateDown(db *sql.DB) error {
	return migrate(context.Background(), db, ".down.sql", true)
}

func migrate(ctx context.Context, db *sql.DB, suffix string, reverse bool) error {
	names, err := migrationNames(suffix, reverse)
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	for _, name := range names {
		script, err := migrationFiles.ReadFile(name)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, string(script)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}

func migrationNames(suffix string, reverse bool) ([]string, error) {
	names, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	if reverse {
		sort.Sort(sort.Reverse(sort.StringSlice(names)))
	} else {
		sort.Strings(names)
	}
	return names, nil
}
