package files

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"docstack-backend/internal/requests"
	"docstack-backend/internal/shared/storage/entity"
	"docstack-backend/internal/shared/storage/object"
	"docstack-backend/internal/shared/telemetry"
)

// RequestResolver assembles the request a file belongs to.
type RequestResolver interface {
	Get(ctx context.Context, id uuid.UUID) (requests.Response, error)
}

// Service contains business logic for uploaded files.
type Service struct {
	Store    entity.Store[File]
	Requests RequestResolver
	Objects  object.ObjectStore
}

// Upload stores the blob and inserts the file record. The request is
// resolved first so an upload against an unknown request never writes to
// the object store. If the insert fails after the blob was written, the
// blob is removed again.
func (s *Service) Upload(ctx context.Context, requestID uuid.UUID, fileName string, r io.Reader) (Response, error) {
	req, err := s.Requests.Get(ctx, requestID)
	if err != nil {
		return Response{}, err
	}

	name, err := object.SanitizeFileName(fileName)
	if err != nil {
		return Response{}, err
	}

	key, size, mimeType, err := s.Objects.Save(ctx, requestID.String(), name, r)
	if err != nil {
		return Response{}, err
	}

	now := time.Now().UTC()
	f := File{
		ID:         uuid.New(),
		RequestID:  requestID,
		FileName:   name,
		StorageKey: key,
		FileSize:   size,
		MimeType:   mimeType,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Store.Insert(ctx, f); err != nil {
		if delErr := s.Objects.Delete(ctx, key); delErr != nil {
			telemetry.Warn("file.orphan_blob", map[string]any{
				"storage_key": key,
				"error":       delErr.Error(),
			})
		}
		return Response{}, err
	}
	return s.assembleWith(f, req), nil
}

// Get assembles one file with its full request chain.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Response, error) {
	f, err := s.Store.Get(ctx, id)
	if err != nil {
		return Response{}, err
	}
	return s.assemble(ctx, f)
}

// List assembles all files.
func (s *Service) List(ctx context.Context) ([]Response, error) {
	all, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Response, 0, len(all))
	for _, f := range all {
		resp, err := s.assemble(ctx, f)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// ListByRequest assembles the files attached to one request. The request
// chain is resolved once and shared across every entry.
func (s *Service) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]Response, error) {
	req, err := s.Requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	all, err := s.Store.ListBy(ctx, "request_id", requestID)
	if err != nil {
		return nil, err
	}
	out := make([]Response, 0, len(all))
	for _, f := range all {
		out = append(out, s.assembleWith(f, req))
	}
	return out, nil
}

// Download opens the stored blob for streaming. Callers own the reader.
func (s *Service) Download(ctx context.Context, id uuid.UUID) (File, io.ReadCloser, error) {
	f, err := s.Store.Get(ctx, id)
	if err != nil {
		return File{}, nil, err
	}
	rc, err := s.Objects.Open(ctx, f.StorageKey)
	if err != nil {
		return File{}, nil, err
	}
	return f, rc, nil
}

// Update merges metadata changes into the stored file record.
func (s *Service) Update(ctx context.Context, id uuid.UUID, payload UpdatePayload) (Response, error) {
	f, err := s.Store.Get(ctx, id)
	if err != nil {
		return Response{}, err
	}

	if payload.FileName != nil {
		name, err := object.SanitizeFileName(*payload.FileName)
		if err != nil {
			return Response{}, err
		}
		f.FileName = name
	}
	f.UpdatedAt = time.Now().UTC()

	if err := s.Store.Update(ctx, f); err != nil {
		return Response{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes the file record and then the blob. A blob that cannot be
// removed is logged and left behind rather than resurrecting the row.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	f, err := s.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.Objects.Delete(ctx, f.StorageKey); err != nil {
		telemetry.Warn("file.orphan_blob", map[string]any{
			"storage_key": f.StorageKey,
			"error":       err.Error(),
		})
	}
	return nil
}

func (s *Service) assemble(ctx context.Context, f File) (Response, error) {
	req, err := s.Requests.Get(ctx, f.RequestID)
	if err != nil {
		return Response{}, err
	}
	return s.assembleWith(f, req), nil
}

func (s *Service) assembleWith(f File, req requests.Response) Response {
	return Response{
		ID:         f.ID,
		Request:    req,
		FileName:   f.FileName,
		StorageKey: f.StorageKey,
		FileSize:   f.FileSize,
		MimeType:   f.MimeType,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}
