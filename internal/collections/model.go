package collections

import (
	"time"

	"github.com/google/uuid"

	"docstack-backend/internal/clients"
	"docstack-backend/internal/shared/storage/entity"
	"docstack-backend/internal/users"
)

// StatusPending is the status every new collection starts in.
const StatusPending = "pending"

// Collection is a named batch of document requests sent to one client.
// The access token lets the client reach the collection without a login;
// expires_at bounds that access.
type Collection struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	UserID      uuid.UUID
	Title       string
	Status      string
	AccessToken string
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Response is the assembled representation: the collection with its client
// and user resolved, each carrying their own firm.
type Response struct {
	ID          uuid.UUID        `json:"id"`
	Client      clients.Response `json:"client"`
	User        users.Response   `json:"user"`
	Title       string           `json:"title"`
	Status      string           `json:"status"`
	AccessToken string           `json:"access_token"`
	ExpiresAt   time.Time        `json:"expires_at"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// CreatePayload is the body for POST /collections. The referenced client
// and user may belong to different firms; nothing checks co-tenancy here.
type CreatePayload struct {
	ClientID uuid.UUID `json:"client_id" binding:"required"`
	UserID   uuid.UUID `json:"user_id" binding:"required"`
	Title    string    `json:"title" binding:"required"`
}

// UpdatePayload is the body for PATCH /collections/:id. Absent fields are preserved.
type UpdatePayload struct {
	Title       *string    `json:"title"`
	Status      *string    `json:"status"`
	AccessToken *string    `json:"access_token"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// Mapping binds Collection to its backing table.
func Mapping() entity.Mapping[Collection] {
	return entity.Mapping[Collection]{
		Table: "collections",
		Columns: []string{
			"id", "client_id", "user_id", "title", "status",
			"access_token", "expires_at", "created_at", "updated_at",
		},
		Scan: func(col *Collection) []any {
			return []any{
				&col.ID, &col.ClientID, &col.UserID, &col.Title, &col.Status,
				&col.AccessToken, &col.ExpiresAt, &col.CreatedAt, &col.UpdatedAt,
			}
		},
		Field: func(col Collection, column string) any {
			switch column {
			case "id":
				return col.ID
			case "client_id":
				return col.ClientID
			case "user_id":
				return col.UserID
			case "title":
				return col.Title
			case "status":
				return col.Status
			case "access_token":
				return col.AccessToken
			case "expires_at":
				return col.ExpiresAt
			case "created_at":
				return col.CreatedAt
			case "updated_at":
				return col.UpdatedAt
			}
			return nil
		},
	}
}
