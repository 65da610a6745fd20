// Package repo contains all database access logic for the travel CRM API.
// Each resource has its own file with an interface and a Postgres implementation.
// No HTTP or presentation logic lives here — only SQL, type mapping, and the
// transactional guarantees the service layer relies on.
package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/travel-crm/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// txStarter is implemented by *pgxpool.Pool and *pgx.Conn but not by pgx.Tx.
type txStarter interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// snapshotOptions make every statement of a listing observe the same snapshot,
// so a page and its total count can never disagree.
var snapshotOptions = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

// inSnapshot runs fn in a REPEATABLE READ, READ ONLY transaction. When d is
// already a transaction, fn runs in a savepoint under the caller's isolation.
func inSnapshot(ctx context.Context, d db, fn func(pgx.Tx) error) error {
	if s, ok := d.(txStarter); ok {
		return pgx.BeginTxFunc(ctx, s, snapshotOptions, fn)
	}
	return pgx.BeginFunc(ctx, d, fn)
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// Postgres SQLSTATE codes translated into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// constraintMessages gives a client-safe description for named constraints.
var constraintMessages = map[string]string{
	"staff_username_key":       "username already exists",
	"staff_email_key":          "email already exists",
	"customers_email_key":      "email already exists",
	"destinations_dates_check": "endDate must not be before startDate",
}

// translate maps driver errors onto domain sentinels. Errors it does not
// recognize are returned unchanged.
func translate(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	msg, ok := constraintMessages[pgErr.ConstraintName]
	if !ok {
		msg = pgErr.ConstraintName
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrConflict, msg)
	case pgForeignKeyViolation:
		return domain.ErrNotFound
	case pgCheckViolation:
		return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
	}
	return err
}

// where accumulates optional SQL predicates and their named arguments.
type where struct {
	clauses []string
	args    pgx.NamedArgs
}

func newWhere() *where {
	return &where{args: pgx.NamedArgs{}}
}

// add appends clause, which must reference @name, and binds name to val.
func (w *where) add(clause, name string, val any) {
	w.clauses = append(w.clauses, clause)
	w.args[name] = val
}

// String renders the WHERE clause, or "" when no predicate was added.
func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// orderBy renders an ORDER BY clause for an allow-listed sort key.
// The primary key is always appended as a tie-breaker so paging is stable.
func orderBy(s domain.Sort, columns map[string]string, pk string) (string, error) {
	col, ok := columns[s.By]
	if !ok {
		return "", fmt.Errorf("%w: cannot sort by %q", domain.ErrValidation, s.By)
	}
	dir := "ASC"
	if s.Order == domain.SortDesc {
		dir = "DESC"
	}
	clause := " ORDER BY " + col + " " + dir
	if col != pk {
		clause += ", " + pk + " ASC"
	}
	return clause, nil
}
