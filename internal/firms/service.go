package firms

import (
	"context"
	"time"

	"github.com/google/uuid"

	"docstack-backend/internal/shared/storage/entity"
)

// Member is a firm user as seen from the firm side, without its firm
// embedded. The Directory adapter in bootstrap produces these so this
// package never has to import the users package.
type Member struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Account is a firm client as seen from the firm side.
type Account struct {
	ID          uuid.UUID
	CompanyName string
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Directory lists the users and clients owned by a firm.
type Directory interface {
	UsersByFirm(ctx context.Context, firmID uuid.UUID) ([]Member, error)
	ClientsByFirm(ctx context.Context, firmID uuid.UUID) ([]Account, error)
}

// Detail is the nested representation returned by GET /firms/:id: the firm
// plus all of its users and clients, each with the firm re-embedded.
type Detail struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Users     []MemberEntry  `json:"users"`
	Clients   []AccountEntry `json:"clients"`
}

// MemberEntry is one user inside a Detail.
type MemberEntry struct {
	ID        uuid.UUID `json:"id"`
	Firm      Firm      `json:"firm"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountEntry is one client inside a Detail.
type AccountEntry struct {
	ID          uuid.UUID `json:"id"`
	Firm        Firm      `json:"firm"`
	CompanyName string    `json:"company_name"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Service contains business logic for firms.
type Service struct {
	Store     entity.Store[Firm]
	Directory Directory
}

// Create inserts a firm and returns its nested detail.
func (s *Service) Create(ctx context.Context, payload CreatePayload) (Detail, error) {
	now := time.Now().UTC()
	firm := Firm{
		ID:        uuid.New(),
		Name:      payload.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Insert(ctx, firm); err != nil {
		return Detail{}, err
	}
	return s.Get(ctx, firm.ID)
}

// Get assembles a firm with its users and clients.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Detail, error) {
	firm, err := s.Store.Get(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	members, err := s.Directory.UsersByFirm(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	accounts, err := s.Directory.ClientsByFirm(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	detail := Detail{
		ID:        firm.ID,
		Name:      firm.Name,
		CreatedAt: firm.CreatedAt,
		UpdatedAt: firm.UpdatedAt,
		Users:     make([]MemberEntry, 0, len(members)),
		Clients:   make([]AccountEntry, 0, len(accounts)),
	}
	for _, m := range members {
		detail.Users = append(detail.Users, MemberEntry{
			ID:        m.ID,
			Firm:      firm,
			Email:     m.Email,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		})
	}
	for _, a := range accounts {
		detail.Clients = append(detail.Clients, AccountEntry{
			ID:          a.ID,
			Firm:        firm,
			CompanyName: a.CompanyName,
			Email:       a.Email,
			CreatedAt:   a.CreatedAt,
			UpdatedAt:   a.UpdatedAt,
		})
	}
	return detail, nil
}

// List returns all firms without nesting.
func (s *Service) List(ctx context.Context) ([]Firm, error) {
	return s.Store.List(ctx)
}

// Update merges the payload into the stored firm. Fields absent in the
// payload keep their previous value.
func (s *Service) Update(ctx context.Context, id uuid.UUID, payload UpdatePayload) (Detail, error) {
	firm, err := s.Store.Get(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	if payload.Name != nil {
		firm.Name = *payload.Name
	}
	firm.UpdatedAt = time.Now().UTC()

	if err := s.Store.Update(ctx, firm); err != nil {
		return Detail{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes a firm. ErrNotFound when the id does not exist.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Store.Delete(ctx, id)
}
