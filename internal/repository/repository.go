// Package repository persists users and connection requests.
//
// The Postgres implementations run over database/sql (pgx stdlib driver) so
// that the same handle serves goose migrations and sqlmock-based tests. The
// in-memory store backs DB_DRIVER=memory and the end-to-end tests.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"DEVLINK_BACK-END/internal/apperr"
)

// Postgres error codes we translate into domain errors
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// DBTX is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// translate maps driver errors onto the apperr taxonomy, wrapping anything
// else as a db error.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(what)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s %s: %w", what, pgErr.ConstraintName, apperr.ErrConflict)
		case pgForeignKeyViolation:
			return apperr.NotFound("user")
		case pgCheckViolation:
			return apperr.InvalidArgument("%s violates %s", what, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("db error: %w", err)
}

func encodeSkills(skills []string) (string, error) {
	if skills == nil {
		skills = []string{}
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return "", fmt.Errorf("encode skills: %w", err)
	}
	return string(b), nil
}

func decodeSkills(raw string) ([]string, error) {
	skills := []string{}
	if raw == "" {
		return skills, nil
	}
	if err := json.Unmarshal([]byte(raw), &skills); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}
	return skills, nil
}
