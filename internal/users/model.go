package users

import (
	"time"

	"github.com/google/uuid"

	"docstack-backend/internal/firms"
	"docstack-backend/internal/shared/storage/entity"
)

// User is a firm employee who authenticates and drives the workflow.
// The password hash never leaves this package: Response has no field for it.
type User struct {
	ID           uuid.UUID
	FirmID       uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Response is the assembled representation with the owning firm embedded.
type Response struct {
	ID        uuid.UUID  `json:"id"`
	Firm      firms.Firm `json:"firm"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreatePayload is the body for POST /register.
type CreatePayload struct {
	FirmID    uuid.UUID `json:"firm_id" binding:"required"`
	Email     string    `json:"email" binding:"required"`
	Password  string    `json:"password" binding:"required"`
	FirstName string    `json:"first_name" binding:"required"`
	LastName  string    `json:"last_name" binding:"required"`
}

// LoginPayload is the body for POST /login.
type LoginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdatePayload is the body for PATCH /users/:id. Absent fields are preserved.
type UpdatePayload struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
}

// Mapping binds User to its backing table. Email is unique, compared
// case-insensitively.
func Mapping() entity.Mapping[User] {
	return entity.Mapping[User]{
		Table: "users",
		Columns: []string{
			"id", "firm_id", "email", "password_hash",
			"first_name", "last_name", "created_at", "updated_at",
		},
		Scan: func(u *User) []any {
			return []any{
				&u.ID, &u.FirmID, &u.Email, &u.PasswordHash,
				&u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt,
			}
		},
		Field: func(u User, column string) any {
			switch column {
			case "id":
				return u.ID
			case "firm_id":
				return u.FirmID
			case "email":
				return u.Email
			case "password_hash":
				return u.PasswordHash
			case "first_name":
				return u.FirstName
			case "last_name":
				return u.LastName
			case "created_at":
				return u.CreatedAt
			case "updated_at":
				return u.UpdatedAt
			}
			return nil
		},
		Unique: []string{"email"},
	}
}
