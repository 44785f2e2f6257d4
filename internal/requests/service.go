package requests

import (
	"context"
	"time"

	"github.com/google/uuid"

	"docstack-backend/internal/collections"
	"docstack-backend/internal/shared/storage/entity"
)

// CollectionResolver assembles the collection a request belongs to.
type CollectionResolver interface {
	Get(ctx context.Context, id uuid.UUID) (collections.Response, error)
}

// Service contains business logic for document requests.
type Service struct {
	Store       entity.Store[Request]
	Collections CollectionResolver
}

// Create inserts a request. New requests always start as pending.
func (s *Service) Create(ctx context.Context, payload CreatePayload) (Response, error) {
	now := time.Now().UTC()
	req := Request{
		ID:           uuid.New(),
		CollectionID: payload.CollectionID,
		Title:        payload.Title,
		Description:  payload.Description,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Insert(ctx, req); err != nil {
		return Response{}, err
	}
	return s.Get(ctx, req.ID)
}

// Get assembles one request with its full collection chain. A missing
// ancestor anywhere in the chain fails the call with NotFound.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Response, error) {
	req, err := s.Store.Get(ctx, id)
	if err != nil {
		return Response{}, err
	}
	return s.assemble(ctx, req)
}

// List assembles all requests.
func (s *Service) List(ctx context.Context) ([]Response, error) {
	all, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Response, 0, len(all))
	for _, req := range all {
		resp, err := s.assemble(ctx, req)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// Update merges the payload into the stored request. Fields absent in the
// payload keep their previous value.
func (s *Service) Update(ctx context.Context, id uuid.UUID, payload UpdatePayload) (Response, error) {
	req, err := s.Store.Get(ctx, id)
	if err != nil {
		return Response{}, err
	}

	if payload.Title != nil {
		req.Title = *payload.Title
	}
	if payload.Description != nil {
		req.Description = *payload.Description
	}
	if payload.Status != nil {
		req.Status = *payload.Status
	}
	req.UpdatedAt = time.Now().UTC()

	if err := s.Store.Update(ctx, req); err != nil {
		return Response{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes a request. ErrNotFound when the id does not exist.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Store.Delete(ctx, id)
}

func (s *Service) assemble(ctx context.Context, req Request) (Response, error) {
	col, err := s.Collections.Get(ctx, req.CollectionID)
	if err != nil {
		return Response{}, err
	}
	return Response{
		ID:          req.ID,
		Collection:  col,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		CreatedAt:   req.CreatedAt,
		UpdatedAt:   req.UpdatedAt,
	}, nil
}
