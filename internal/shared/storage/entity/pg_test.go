package entity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type widget struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func widgetMapping() Mapping[widget] {
	return Mapping[widget]{
		Table:   "widgets",
		Columns: []string{"id", "name", "created_at", "updated_at"},
		Scan: func(w *widget) []any {
			return []any{&w.ID, &w.Name, &w.CreatedAt, &w.UpdatedAt}
		},
		Field: func(w widget, column string) any {
			switch column {
			case "id":
				return w.ID
			case "name":
				return w.Name
			case "created_at":
				return w.CreatedAt
			case "updated_at":
				return w.UpdatedAt
			}
			return nil
		},
		Unique: []string{"name"},
	}
}

func newWidget(name string) widget {
	now := time.Now().UTC()
	return widget{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now}
}

func TestPGStoreInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := NewPGStore(db, widgetMapping())
	w := newWidget("alpha")

	mock.ExpectExec("INSERT INTO widgets").
		WithArgs(w.ID, w.Name, w.CreatedAt, w.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Insert(context.Background(), w); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreInsertMapsUniqueViolationToConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := NewPGStore(db, widgetMapping())
	w := newWidget("alpha")

	mock.ExpectExec("INSERT INTO widgets").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	if err := store.Insert(context.Background(), w); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestPGStoreGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := NewPGStore(db, widgetMapping())
	id := uuid.New()

	mock.ExpectQuery("SELECT id, name, created_at, updated_at FROM widgets").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}))

	if _, err := store.Get(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGStoreGetByTextIsCaseInsensitive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := NewPGStore(db, widgetMapping())
	w := newWidget("Alpha")

	mock.ExpectQuery(`LOWER\(name\) = LOWER\(\$1\)`).
		WithArgs("ALPHA").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
				AddRow(w.ID, w.Name, w.CreatedAt, w.UpdatedAt),
		)

	got, err := store.GetByText(context.Background(), "name", "ALPHA")
	if err != nil {
		t.Fatalf("GetByText: %v", err)
	}
	if got.ID != w.ID {
		t.Fatalf("expected widget %s, got %s", w.ID, got.ID)
	}
}

func TestPGStoreUpdateZeroRowsIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := NewPGStore(db, widgetMapping())
	w := newWidget("alpha")

	mock.ExpectExec("UPDATE widgets SET").
		WithArgs(w.ID, w.Name, w.CreatedAt, w.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.Update(context.Background(), w); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGStoreDeleteZeroRowsIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := NewPGStore(db, widgetMapping())
	id := uuid.New()

	mock.ExpectExec("DELETE FROM widgets").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM widgets").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.Delete(context.Background(), id); err != nil {
		t.Fatalf("first Delete: %v", err)
	}
	if err := store.Delete(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete: expected ErrNotFound, got %v", err)
	}
}

func TestPGStoreListByOrdersByCreatedAt(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := NewPGStore(db, widgetMapping())
	a := newWidget("alpha")
	b := newWidget("beta")

	mock.ExpectQuery("ORDER BY created_at DESC").
		WithArgs("alpha").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
				AddRow(b.ID, b.Name, b.CreatedAt, b.UpdatedAt).
				AddRow(a.ID, a.Name, a.CreatedAt, a.UpdatedAt),
		)

	got, err := store.ListBy(context.Background(), "name", "alpha")
	if err != nil {
		t.Fatalf("ListBy: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
}
