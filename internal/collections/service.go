package collections

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"docstack-backend/internal/clients"
	"docstack-backend/internal/shared/storage/entity"
	"docstack-backend/internal/users"
)

// accessTTL bounds unauthenticated client access to a new collection.
const accessTTL = 24 * time.Hour

// ClientResolver assembles the client side of a collection.
type ClientResolver interface {
	Get(ctx context.Context, id uuid.UUID) (clients.Response, error)
}

// UserResolver assembles the user side of a collection.
type UserResolver interface {
	Get(ctx context.Context, id uuid.UUID) (users.Response, error)
}

// Service contains business logic for collections.
type Service struct {
	Store   entity.Store[Collection]
	Clients ClientResolver
	Users   UserResolver
}

// Create inserts a collection with a fresh access token and a 24h expiry.
func (s *Service) Create(ctx context.Context, payload CreatePayload) (Response, error) {
	now := time.Now().UTC()
	col := Collection{
		ID:          uuid.New(),
		ClientID:    payload.ClientID,
		UserID:      payload.UserID,
		Title:       payload.Title,
		Status:      StatusPending,
		AccessToken: newAccessToken(),
		ExpiresAt:   now.Add(accessTTL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Insert(ctx, col); err != nil {
		return Response{}, err
	}
	return s.Get(ctx, col.ID)
}

// Get assembles one collection. A client or user deleted between the leaf
// fetch and the ancestor fetch fails the whole call with NotFound; a
// partially assembled response is never returned.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Response, error) {
	col, err := s.Store.Get(ctx, id)
	if err != nil {
		return Response{}, err
	}
	return s.assemble(ctx, col)
}

// List assembles all collections, one ancestor resolution per row.
func (s *Service) List(ctx context.Context) ([]Response, error) {
	all, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Response, 0, len(all))
	for _, col := range all {
		resp, err := s.assemble(ctx, col)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// Update merges the payload into the stored collection. Fields absent in
// the payload keep their previous value.
func (s *Service) Update(ctx context.Context, id uuid.UUID, payload UpdatePayload) (Response, error) {
	col, err := s.Store.Get(ctx, id)
	if err != nil {
		return Response{}, err
	}

	if payload.Title != nil {
		col.Title = *payload.Title
	}
	if payload.Status != nil {
		col.Status = *payload.Status
	}
	if payload.AccessToken != nil {
		col.AccessToken = *payload.AccessToken
	}
	if payload.ExpiresAt != nil {
		col.ExpiresAt = *payload.ExpiresAt
	}
	col.UpdatedAt = time.Now().UTC()

	if err := s.Store.Update(ctx, col); err != nil {
		return Response{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes a collection. ErrNotFound when the id does not exist.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Store.Delete(ctx, id)
}

func (s *Service) assemble(ctx context.Context, col Collection) (Response, error) {
	client, err := s.Clients.Get(ctx, col.ClientID)
	if err != nil {
		return Response{}, err
	}
	user, err := s.Users.Get(ctx, col.UserID)
	if err != nil {
		return Response{}, err
	}
	return Response{
		ID:          col.ID,
		Client:      client,
		User:        user,
		Title:       col.Title,
		Status:      col.Status,
		AccessToken: col.AccessToken,
		ExpiresAt:   col.ExpiresAt,
		CreatedAt:   col.CreatedAt,
		UpdatedAt:   col.UpdatedAt,
	}, nil
}

func newAccessToken() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(b[:])
}
