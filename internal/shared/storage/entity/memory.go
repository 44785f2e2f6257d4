package entity

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store in memory. It backs dev mode without a
// database and keeps handler tests hermetic. Records are value types, so
// map reads and writes copy whole records.
type MemoryStore[T any] struct {
	mu    sync.RWMutex
	items map[uuid.UUID]T
	m     Mapping[T]
}

// NewMemoryStore constructs an empty MemoryStore for the given mapping.
func NewMemoryStore[T any](m Mapping[T]) *MemoryStore[T] {
	return &MemoryStore[T]{items: make(map[uuid.UUID]T), m: m}
}

func (s *MemoryStore[T]) Insert(ctx context.Context, rec T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.m.ID(rec)
	if _, exists := s.items[id]; exists {
		return ErrConflict
	}
	if s.conflictsLocked(rec, id) {
		return ErrConflict
	}
	s.items[id] = rec
	return nil
}

func (s *MemoryStore[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.items[id]
	if !ok {
		return zero, ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore[T]) GetByText(ctx context.Context, column, value string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.items {
		if str, ok := s.m.Field(rec, column).(string); ok && strings.EqualFold(str, value) {
			return rec, nil
		}
	}
	return zero, ErrNotFound
}

func (s *MemoryStore[T]) List(ctx context.Context) ([]T, error) {
	return s.listWhere(ctx, func(T) bool { return true })
}

func (s *MemoryStore[T]) ListBy(ctx context.Context, column string, value any) ([]T, error) {
	return s.listWhere(ctx, func(rec T) bool {
		return s.m.Field(rec, column) == value
	})
}

func (s *MemoryStore[T]) listWhere(ctx context.Context, match func(T) bool) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []T
	for _, rec := range s.items {
		if match(rec) {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return s.createdAt(out[i]).After(s.createdAt(out[j]))
	})
	return out, nil
}

func (s *MemoryStore[T]) Update(ctx context.Context, rec T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.m.ID(rec)
	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	if s.conflictsLocked(rec, id) {
		return ErrConflict
	}
	s.items[id] = rec
	return nil
}

func (s *MemoryStore[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// conflictsLocked reports whether rec violates a unique column against any
// other stored record. String comparison is case-insensitive to match the
// LOWER() unique indexes in Postgres.
func (s *MemoryStore[T]) conflictsLocked(rec T, id uuid.UUID) bool {
	for _, col := range s.m.Unique {
		val := s.m.Field(rec, col)
		for otherID, other := range s.items {
			if otherID == id {
				continue
			}
			otherVal := s.m.Field(other, col)
			if a, ok := val.(string); ok {
				if b, ok := otherVal.(string); ok && strings.EqualFold(a, b) {
					return true
				}
				continue
			}
			if val == otherVal {
				return true
			}
		}
	}
	return false
}

func (s *MemoryStore[T]) createdAt(rec T) time.Time {
	t, _ := s.m.Field(rec, "created_at").(time.Time)
	return t
}

var _ Store[struct{}] = (*MemoryStore[struct{}])(nil)
