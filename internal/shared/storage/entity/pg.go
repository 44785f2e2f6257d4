package entity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// PGStore implements Store against Postgres via database/sql.
type PGStore[T any] struct {
	DB *sql.DB
	M  Mapping[T]
}

// NewPGStore constructs a PGStore for the given mapping.
func NewPGStore[T any](database *sql.DB, m Mapping[T]) *PGStore[T] {
	return &PGStore[T]{DB: database, M: m}
}

func (s *PGStore[T]) Insert(ctx context.Context, rec T) error {
	cols := s.M.Columns
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = s.M.Field(rec, col)
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		s.M.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "),
	)
	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return classify(err)
	}
	return nil
}

func (s *PGStore[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	return s.getWhere(ctx, "id = $1", id)
}

func (s *PGStore[T]) GetByText(ctx context.Context, column, value string) (T, error) {
	return s.getWhere(ctx, fmt.Sprintf("LOWER(%s) = LOWER($1)", column), value)
}

func (s *PGStore[T]) getWhere(ctx context.Context, cond string, arg any) (T, error) {
	var rec T
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s LIMIT 1",
		strings.Join(s.M.Columns, ", "), s.M.Table, cond,
	)
	err := s.DB.QueryRowContext(ctx, query, arg).Scan(s.M.Scan(&rec)...)
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	return rec, nil
}

func (s *PGStore[T]) List(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY created_at DESC",
		strings.Join(s.M.Columns, ", "), s.M.Table,
	)
	return s.queryAll(ctx, query)
}

func (s *PGStore[T]) ListBy(ctx context.Context, column string, value any) ([]T, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 ORDER BY created_at DESC",
		strings.Join(s.M.Columns, ", "), s.M.Table, column,
	)
	return s.queryAll(ctx, query, value)
}

func (s *PGStore[T]) queryAll(ctx context.Context, query string, args ...any) ([]T, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var rec T
		if err := rows.Scan(s.M.Scan(&rec)...); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *PGStore[T]) Update(ctx context.Context, rec T) error {
	cols := s.M.Columns
	sets := make([]string, 0, len(cols)-1)
	args := make([]any, 0, len(cols))
	args = append(args, s.M.Field(rec, "id"))
	for _, col := range cols {
		if col == "id" {
			continue
		}
		args = append(args, s.M.Field(rec, col))
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $1", s.M.Table, strings.Join(sets, ", "))

	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return classify(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore[T]) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.M.Table)
	res, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// classify inspects a store error once, at the point of occurrence, so
// callers only ever see ErrConflict or an opaque internal error.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrConflict
	}
	return err
}

var _ Store[struct{}] = (*PGStore[struct{}])(nil)
