package requests

import (
	"time"

	"github.com/google/uuid"

	"docstack-backend/internal/collections"
	"docstack-backend/internal/shared/storage/entity"
)

// StatusPending is the status every new request starts in.
const StatusPending = "pending"

// Request is one line item within a collection describing the documents
// to gather.
type Request struct {
	ID           uuid.UUID
	CollectionID uuid.UUID
	Title        string
	Description  string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Response is the assembled representation: the request with its full
// collection chain (client, user, firms) resolved.
type Response struct {
	ID          uuid.UUID            `json:"id"`
	Collection  collections.Response `json:"collection"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Status      string               `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// CreatePayload is the body for POST /requests.
type CreatePayload struct {
	CollectionID uuid.UUID `json:"collection_id" binding:"required"`
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description"`
}

// UpdatePayload is the body for PATCH /requests/:id. Absent fields are preserved.
type UpdatePayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// Mapping binds Request to its backing table.
func Mapping() entity.Mapping[Request] {
	return entity.Mapping[Request]{
		Table: "requests",
		Columns: []string{
			"id", "collection_id", "title", "description", "status",
			"created_at", "updated_at",
		},
		Scan: func(r *Request) []any {
			return []any{
				&r.ID, &r.CollectionID, &r.Title, &r.Description, &r.Status,
				&r.CreatedAt, &r.UpdatedAt,
			}
		},
		Field: func(r Request, column string) any {
			switch column {
			case "id":
				return r.ID
			case "collection_id":
				return r.CollectionID
			case "title":
				return r.Title
			case "description":
				return r.Description
			case "status":
				return r.Status
			case "created_at":
				return r.CreatedAt
			case "updated_at":
				return r.UpdatedAt
			}
			return nil
		},
	}
}
