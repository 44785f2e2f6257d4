package files

import (
	"time"

	"github.com/google/uuid"

	"docstack-backend/internal/requests"
	"docstack-backend/internal/shared/storage/entity"
)

// File is an uploaded document attached to a request. StorageKey points
// into the object store; it is opaque to clients but travels with the
// record.
type File struct {
	ID         uuid.UUID
	RequestID  uuid.UUID
	FileName   string
	StorageKey string
	FileSize   int64
	MimeType   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Response is the assembled representation: the file with its full
// request chain resolved.
type Response struct {
	ID         uuid.UUID         `json:"id"`
	Request    requests.Response `json:"request"`
	FileName   string            `json:"file_name"`
	StorageKey string            `json:"storage_key"`
	FileSize   int64             `json:"file_size"`
	MimeType   string            `json:"mime_type"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// UpdatePayload is the body for PATCH /files/:id. Only metadata is
// mutable; the stored blob is immutable once uploaded.
type UpdatePayload struct {
	FileName *string `json:"file_name"`
}

// Mapping binds File to its backing table.
func Mapping() entity.Mapping[File] {
	return entity.Mapping[File]{
		Table: "files",
		Columns: []string{
			"id", "request_id", "file_name", "storage_key", "file_size",
			"mime_type", "created_at", "updated_at",
		},
		Scan: func(f *File) []any {
			return []any{
				&f.ID, &f.RequestID, &f.FileName, &f.StorageKey, &f.FileSize,
				&f.MimeType, &f.CreatedAt, &f.UpdatedAt,
			}
		},
		Field: func(f File, column string) any {
			switch column {
			case "id":
				return f.ID
			case "request_id":
				return f.RequestID
			case "file_name":
				return f.FileName
			case "storage_key":
				return f.StorageKey
			case "file_size":
				return f.FileSize
			case "mime_type":
				return f.MimeType
			case "created_at":
				return f.CreatedAt
			case "updated_at":
				return f.UpdatedAt
			}
			return nil
		},
	}
}
