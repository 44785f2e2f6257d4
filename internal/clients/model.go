package clients

import (
	"time"

	"github.com/google/uuid"

	"docstack-backend/internal/firms"
	"docstack-backend/internal/shared/storage/entity"
)

// Client is the external party a firm requests documents from.
type Client struct {
	ID          uuid.UUID
	FirmID      uuid.UUID
	CompanyName string
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Response is the assembled representation with the owning firm embedded.
type Response struct {
	ID          uuid.UUID  `json:"id"`
	Firm        firms.Firm `json:"firm"`
	CompanyName string     `json:"company_name"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreatePayload is the body for POST /clients.
type CreatePayload struct {
	FirmID      uuid.UUID `json:"firm_id" binding:"required"`
	CompanyName string    `json:"company_name" binding:"required"`
	Email       string    `json:"email" binding:"required"`
}

// UpdatePayload is the body for PATCH /clients/:id. Absent fields are preserved.
type UpdatePayload struct {
	CompanyName *string `json:"company_name"`
	Email       *string `json:"email"`
}

// Mapping binds Client to its backing table.
func Mapping() entity.Mapping[Client] {
	return entity.Mapping[Client]{
		Table: "clients",
		Columns: []string{
			"id", "firm_id", "company_name", "email", "created_at", "updated_at",
		},
		Scan: func(cl *Client) []any {
			return []any{
				&cl.ID, &cl.FirmID, &cl.CompanyName, &cl.Email, &cl.CreatedAt, &cl.UpdatedAt,
			}
		},
		Field: func(cl Client, column string) any {
			switch column {
			case "id":
				return cl.ID
			case "firm_id":
				return cl.FirmID
			case "company_name":
				return cl.CompanyName
			case "email":
				return cl.Email
			case "created_at":
				return cl.CreatedAt
			case "updated_at":
				return cl.UpdatedAt
			}
			return nil
		},
	}
}
