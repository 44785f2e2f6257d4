package firms

import (
	"time"

	"github.com/google/uuid"

	"docstack-backend/internal/shared/storage/entity"
)

// Firm is the tenant organization at the root of the ownership tree.
type Firm struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePayload is the body for POST /firms.
type CreatePayload struct {
	Name string `json:"name" binding:"required"`
}

// UpdatePayload is the body for PATCH /firms/:id. Absent fields are preserved.
type UpdatePayload struct {
	Name *string `json:"name"`
}

// Mapping binds Firm to its backing table.
func Mapping() entity.Mapping[Firm] {
	return entity.Mapping[Firm]{
		Table:   "firms",
		Columns: []string{"id", "name", "created_at", "updated_at"},
		Scan: func(f *Firm) []any {
			return []any{&f.ID, &f.Name, &f.CreatedAt, &f.UpdatedAt}
		},
		Field: func(f Firm, column string) any {
			switch column {
			case "id":
				return f.ID
			case "name":
				return f.Name
			case "created_at":
				return f.CreatedAt
			case "updated_at":
				return f.UpdatedAt
			}
			return nil
		},
	}
}
