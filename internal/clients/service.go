package clients

import (
	"context"
	"time"

	"github.com/google/uuid"

	"docstack-backend/internal/firms"
	"docstack-backend/internal/shared/storage/entity"
)

// FirmSource resolves the firm a client belongs to.
type FirmSource interface {
	Get(ctx context.Context, id uuid.UUID) (firms.Firm, error)
}

// Service contains business logic for clients.
type Service struct {
	Store entity.Store[Client]
	Firms FirmSource
}

// Create inserts a client and returns its assembled representation.
func (s *Service) Create(ctx context.Context, payload CreatePayload) (Response, error) {
	now := time.Now().UTC()
	client := Client{
		ID:          uuid.New(),
		FirmID:      payload.FirmID,
		CompanyName: payload.CompanyName,
		Email:       payload.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Insert(ctx, client); err != nil {
		return Response{}, err
	}
	return s.Get(ctx, client.ID)
}

// Get assembles one client with its firm embedded.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Response, error) {
	client, err := s.Store.Get(ctx, id)
	if err != nil {
		return Response{}, err
	}
	return s.assemble(ctx, client)
}

// List assembles all clients, one ancestor resolution per row.
func (s *Service) List(ctx context.Context) ([]Response, error) {
	all, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Response, 0, len(all))
	for _, client := range all {
		resp, err := s.assemble(ctx, client)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// Update merges the payload into the stored client. Fields absent in the
// payload keep their previous value.
func (s *Service) Update(ctx context.Context, id uuid.UUID, payload UpdatePayload) (Response, error) {
	client, err := s.Store.Get(ctx, id)
	if err != nil {
		return Response{}, err
	}

	if payload.CompanyName != nil {
		client.CompanyName = *payload.CompanyName
	}
	if payload.Email != nil {
		client.Email = *payload.Email
	}
	client.UpdatedAt = time.Now().UTC()

	if err := s.Store.Update(ctx, client); err != nil {
		return Response{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes a client. ErrNotFound when the id does not exist.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Store.Delete(ctx, id)
}

func (s *Service) assemble(ctx context.Context, client Client) (Response, error) {
	firm, err := s.Firms.Get(ctx, client.FirmID)
	if err != nil {
		return Response{}, err
	}
	return Response{
		ID:          client.ID,
		Firm:        firm,
		CompanyName: client.CompanyName,
		Email:       client.Email,
		CreatedAt:   client.CreatedAt,
		UpdatedAt:   client.UpdatedAt,
	}, nil
}
