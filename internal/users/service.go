package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"docstack-backend/internal/firms"
	"docstack-backend/internal/shared/auth"
	"docstack-backend/internal/shared/storage/entity"
)

// ErrInvalidCredentials covers both unknown email and wrong password, so a
// login failure never reveals whether the account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// FirmSource resolves the firm a user belongs to.
type FirmSource interface {
	Get(ctx context.Context, id uuid.UUID) (firms.Firm, error)
}

// Service contains business logic for users, including credential
// registration and login.
type Service struct {
	Store  entity.Store[User]
	Firms  FirmSource
	Secret []byte
}

// Register validates the payload, hashes the password and inserts the user.
// A duplicate email (case-insensitive) surfaces as entity.ErrConflict.
func (s *Service) Register(ctx context.Context, payload CreatePayload) (Response, error) {
	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		return Response{}, err
	}

	now := time.Now().UTC()
	user := User{
		ID:           uuid.New(),
		FirmID:       payload.FirmID,
		Email:        strings.ToLower(strings.TrimSpace(payload.Email)),
		PasswordHash: hash,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Insert(ctx, user); err != nil {
		return Response{}, err
	}
	return s.Get(ctx, user.ID)
}

// Login verifies credentials and issues a signed token. Unknown email and
// wrong password both map to ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, payload LoginPayload) (string, error) {
	user, err := s.Store.GetByText(ctx, "email", strings.TrimSpace(payload.Email))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.CheckPassword(user.PasswordHash, payload.Password) {
		return "", ErrInvalidCredentials
	}

	return auth.SignToken(s.Secret, user.ID)
}

// Get assembles one user with its firm embedded.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Response, error) {
	user, err := s.Store.Get(ctx, id)
	if err != nil {
		return Response{}, err
	}
	return s.assemble(ctx, user)
}

// List assembles all users. Ancestor resolution runs once per row; a firm
// deleted mid-listing fails the whole call with NotFound rather than
// returning a partial response.
func (s *Service) List(ctx context.Context) ([]Response, error) {
	all, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Response, 0, len(all))
	for _, user := range all {
		resp, err := s.assemble(ctx, user)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// Update merges the payload into the stored user. Fields absent in the
// payload keep their previous value.
func (s *Service) Update(ctx context.Context, id uuid.UUID, payload UpdatePayload) (Response, error) {
	user, err := s.Store.Get(ctx, id)
	if err != nil {
		return Response{}, err
	}

	if payload.FirstName != nil {
		user.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		user.LastName = *payload.LastName
	}
	if payload.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*payload.Email))
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.Store.Update(ctx, user); err != nil {
		return Response{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes a user. ErrNotFound when the id does not exist. Tokens
// already issued for the user stay valid until they expire.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Store.Delete(ctx, id)
}

func (s *Service) assemble(ctx context.Context, user User) (Response, error) {
	firm, err := s.Firms.Get(ctx, user.FirmID)
	if err != nil {
		return Response{}, err
	}
	return Response{
		ID:        user.ID,
		Firm:      firm,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}
