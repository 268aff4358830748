// Package postgres implements the record stores against PostgreSQL.
//
// Save is a single conditional UPDATE guarded by the version column, so the
// compare-and-swap happens inside the database; this side never does a
// read-then-write pair.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"daybook/pkg/platform/sentinel"
)

//go:embed schema.sql
var Schema string

// pgUniqueViolation is the PostgreSQL error code for unique constraint hits.
const pgUniqueViolation = "23505"

// Open connects via the pgx stdlib driver and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// EnsureSchema applies the embedded schema. Development and test convenience;
// production deployments run their own migrations.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// existsByID disambiguates a zero-row conditional UPDATE: the record is
// either gone (not found) or present at another version (conflict).
func existsByID(ctx context.Context, db *sql.DB, query, id string) (bool, error) {
	var exists bool
	if err := db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check existence: %w", err)
	}
	return exists, nil
}

// saveOutcome translates a conditional UPDATE result into store semantics.
func saveOutcome(ctx context.Context, db *sql.DB, existsQuery, id string, scanErr error) error {
	if !errors.Is(scanErr, sql.ErrNoRows) {
		return scanErr
	}
	exists, err := existsByID(ctx, db, existsQuery, id)
	if err != nil {
		return err
	}
	if exists {
		return sentinel.ErrVersionConflict
	}
	return sentinel.ErrNotFound
}
