package collections

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docstack-backend/internal/clients"
	"docstack-backend/internal/firms"
	"docstack-backend/internal/shared/storage/entity"
	"docstack-backend/internal/users"
)

type fixture struct {
	router      *gin.Engine
	firmStore   entity.Store[firms.Firm]
	userStore   entity.Store[users.User]
	clientStore entity.Store[clients.Client]

	firm   firms.Firm
	user   users.User
	client clients.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		firmStore:   entity.NewMemoryStore(firms.Mapping()),
		userStore:   entity.NewMemoryStore(users.Mapping()),
		clientStore: entity.NewMemoryStore(clients.Mapping()),
	}

	userSvc := &users.Service{Store: f.userStore, Firms: f.firmStore, Secret: []byte("test-secret")}
	clientSvc := &clients.Service{Store: f.clientStore, Firms: f.firmStore}
	svc := &Service{
		Store:   entity.NewMemoryStore(Mapping()),
		Clients: clientSvc,
		Users:   userSvc,
	}

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/"))
	f.router = r

	ctx := context.Background()
	now := time.Now().UTC()
	f.firm = firms.Firm{ID: uuid.New(), Name: "Acme Accounting", CreatedAt: now, UpdatedAt: now}
	if err := f.firmStore.Insert(ctx, f.firm); err != nil {
		t.Fatalf("seed firm: %v", err)
	}
	f.user = users.User{
		ID: uuid.New(), FirmID: f.firm.ID, Email: "jan@acme.test",
		PasswordHash: "x", FirstName: "Jan", LastName: "Kowalski",
		CreatedAt: now, UpdatedAt: now,
	}
	if err := f.userStore.Insert(ctx, f.user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	f.client = clients.Client{
		ID: uuid.New(), FirmID: f.firm.ID, CompanyName: "Beta Sp. z o.o.",
		Email: "office@beta.test", CreatedAt: now, UpdatedAt: now,
	}
	if err := f.clientStore.Insert(ctx, f.client); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return f
}

func (f *fixture) doJSON(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	f.router.ServeHTTP(resp, req)
	return resp
}

func (f *fixture) create(t *testing.T) Response {
	t.Helper()
	resp := f.doJSON(t, http.MethodPost, "/collections", map[string]any{
		"client_id": f.client.ID,
		"user_id":   f.user.ID,
		"title":     "Year-end documents",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var out Response
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestCreateCollectionDefaults(t *testing.T) {
	f := newFixture(t)
	before := time.Now().UTC()

	created := f.create(t)

	if created.Status != StatusPending {
		t.Fatalf("expected status pending, got %s", created.Status)
	}
	if created.AccessToken == "" {
		t.Fatal("expected a generated access token")
	}
	ttl := created.ExpiresAt.Sub(before)
	if ttl < 23*time.Hour || ttl > 25*time.Hour {
		t.Fatalf("expected expiry about a day out, got %s", ttl)
	}
}

func TestCollectionEmbedsFullChain(t *testing.T) {
	f := newFixture(t)
	created := f.create(t)

	if created.Client.ID != f.client.ID {
		t.Fatalf("expected embedded client %s, got %s", f.client.ID, created.Client.ID)
	}
	if created.Client.Firm.ID != f.firm.ID {
		t.Fatalf("expected firm inside client, got %s", created.Client.Firm.ID)
	}
	if created.User.ID != f.user.ID {
		t.Fatalf("expected embedded user %s, got %s", f.user.ID, created.User.ID)
	}
	if created.User.Firm.Name != "Acme Accounting" {
		t.Fatalf("expected firm inside user, got %s", created.User.Firm.Name)
	}
}

func TestCollectionMissingAncestorFailsWhole(t *testing.T) {
	f := newFixture(t)
	created := f.create(t)

	if err := f.clientStore.Delete(context.Background(), f.client.ID); err != nil {
		t.Fatalf("delete client: %v", err)
	}

	resp := f.doJSON(t, http.MethodGet, "/collections/"+created.ID.String(), nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 once an ancestor is gone, got %d: %s", resp.Code, resp.Body.String())
	}

	list := f.doJSON(t, http.MethodGet, "/collections", nil)
	if list.Code != http.StatusNotFound {
		t.Fatalf("expected list to fail on broken chain, got %d", list.Code)
	}
}

func TestUpdateCollectionStatus(t *testing.T) {
	f := newFixture(t)
	created := f.create(t)

	patch := f.doJSON(t, http.MethodPatch, "/collections/"+created.ID.String(), map[string]any{
		"status": "complete",
	})
	if patch.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d: %s", patch.Code, patch.Body.String())
	}

	var updated Response
	if err := json.Unmarshal(patch.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Status != "complete" {
		t.Fatalf("expected status complete, got %s", updated.Status)
	}
	if updated.Title != created.Title || updated.AccessToken != created.AccessToken {
		t.Fatalf("expected untouched fields preserved")
	}
}

func TestCreateCollectionValidation(t *testing.T) {
	f := newFixture(t)

	resp := f.doJSON(t, http.MethodPost, "/collections", map[string]any{"title": "no ids"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	resp = f.doJSON(t, http.MethodPost, "/collections", map[string]any{
		"client_id": uuid.New(),
		"user_id":   f.user.ID,
		"title":     "dangling client",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown client, got %d: %s", resp.Code, resp.Body.String())
	}
}
