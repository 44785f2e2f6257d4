// Package entity provides a generic store for the portal's resource graph.
// Every entity kind (firm, user, client, collection, request, file) shares
// the same create/read/update/delete contract; per-entity specialization
// lives in the Mapping each domain package supplies.
package entity

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no row matches the given id, including
	// deletes and updates that affect zero rows.
	ErrNotFound = errors.New("entity not found")
	// ErrConflict is returned when a uniqueness constraint is violated.
	ErrConflict = errors.New("entity already exists")
)

// Mapping describes how an entity type maps onto its backing table.
type Mapping[T any] struct {
	// Table is the backing table name.
	Table string
	// Columns lists all columns in select/insert order; "id" must be first
	// and "created_at" must be present.
	Columns []string
	// Scan returns scan destinations for a row, in Columns order.
	Scan func(rec *T) []any
	// Field returns the value of a single column for a record.
	Field func(rec T, column string) any
	// Unique lists columns under a uniqueness constraint. String values
	// compare case-insensitively, matching the LOWER() indexes in Postgres.
	Unique []string
}

// ID extracts the record id via the mapping.
func (m Mapping[T]) ID(rec T) uuid.UUID {
	id, _ := m.Field(rec, "id").(uuid.UUID)
	return id
}

// Store is the per-entity persistence contract.
type Store[T any] interface {
	// Insert writes a fully populated record. ErrConflict on uniqueness violation.
	Insert(ctx context.Context, rec T) error
	// Get fetches one record by id. ErrNotFound when absent.
	Get(ctx context.Context, id uuid.UUID) (T, error)
	// GetByText fetches the record whose column equals value, compared
	// case-insensitively. ErrNotFound when absent.
	GetByText(ctx context.Context, column, value string) (T, error)
	// List returns all records, newest first.
	List(ctx context.Context) ([]T, error)
	// ListBy returns records whose column equals value, newest first.
	ListBy(ctx context.Context, column string, value any) ([]T, error)
	// Update writes a full merged record back. ErrNotFound when the id is
	// gone, ErrConflict on uniqueness violation.
	Update(ctx context.Context, rec T) error
	// Delete removes a record by id. ErrNotFound when zero rows were
	// affected; never a silent no-op.
	Delete(ctx context.Context, id uuid.UUID) error
}
