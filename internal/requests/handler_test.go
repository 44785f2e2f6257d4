package requests

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
	"docstack-backend/internal/collections"
	"docstack-backend/internal/firms"
	"docstack-backend/internal/shared/storage/entity"
	"docstack-backend/internal/users"
)

type fixture struct {
	router     *gin.Engine
	collection collections.Response
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	firmStore := entity.NewMemoryStore(firms.Mapping())
	userStore := entity.NewMemoryStore(users.Mapping())
	clientStore := entity.NewMemoryStore(clients.Mapping())

	userSvc := &users.Service{Store: userStore, Firms: firmStore, Secret: []byte("test-secret")}
	clientSvc := &clients.Service{Store: clientStore, Firms: firmStore}
	collectionSvc := &collections.Service{
		Store:   entity.NewMemoryStore(collections.Mapping()),
		Clients: clientSvc,
		Users:   userSvc,
	}
	svc := &Service{
		Store:       entity.NewMemoryStore(Mapping()),
		Collections: collectionSvc,
	}

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/"))

	ctx := context.Background()
	now := time.Now().UTC()
	firm := firms.Firm{ID: uuid.New(), Name: "Acme Accounting", CreatedAt: now, UpdatedAt: now}
	if err := firmStore.Insert(ctx, firm); err != nil {
		t.Fatalf("seed firm: %v", err)
	}
	user := users.User{
		ID: uuid.New(), FirmID: firm.ID, Email: "jan@acme.test",
		PasswordHash: "x", FirstName: "Jan", LastName: "Kowalski",
		CreatedAt: now, UpdatedAt: now,
	}
	if err := userStore.Insert(ctx, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	client := clients.Client{
		ID: uuid.New(), FirmID: firm.ID, CompanyName: "Beta Sp. z o.o.",
		Email: "office@beta.test", CreatedAt: now, UpdatedAt: now,
	}
	if err := clientStore.Insert(ctx, client); err != nil {
		t.Fatalf("seed client: %v", err)
	}

	collection, err := collectionSvc.Create(ctx, collections.CreatePayload{
		ClientID: client.ID,
		UserID:   user.ID,
		Title:    "Year-end documents",
	})
	if err != nil {
		t.Fatalf("seed collection: %v", err)
	}

	return &fixture{router: r, collection: collection}
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

func TestCreateRequestDefaultsToPending(t *testing.T) {
	f := newFixture(t)

	resp := f.doJSON(t, http.MethodPost, "/requests", map[string]any{
		"collection_id": f.collection.ID,
		"title":         "Bank statements",
		"description":   "Last three months",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created Response
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Status != StatusPending {
		t.Fatalf("expected status pending, got %s", created.Status)
	}
	if created.Collection.ID != f.collection.ID {
		t.Fatalf("expected embedded collection %s, got %s", f.collection.ID, created.Collection.ID)
	}
	if created.Collection.Client.Firm.Name != "Acme Accounting" {
		t.Fatalf("expected full chain down to the firm, got %+v", created.Collection.Client)
	}
}

func TestCreateRequestUnknownCollection(t *testing.T) {
	f := newFixture(t)

	resp := f.doJSON(t, http.MethodPost, "/requests", map[string]any{
		"collection_id": uuid.New(),
		"title":         "Orphan",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUpdateRequestStatusOnly(t *testing.T) {
	f := newFixture(t)

	created := f.doJSON(t, http.MethodPost, "/requests", map[string]any{
		"collection_id": f.collection.ID,
		"title":         "Bank statements",
		"description":   "Last three months",
	})
	var req Response
	if err := json.Unmarshal(created.Body.Bytes(), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}

	patch := f.doJSON(t, http.MethodPatch, "/requests/"+req.ID.String(), map[string]any{
		"status": "uploaded",
	})
	if patch.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d: %s", patch.Code, patch.Body.String())
	}
	var updated Response
	if err := json.Unmarshal(patch.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Status != "uploaded" {
		t.Fatalf("expected status uploaded, got %s", updated.Status)
	}
	if updated.Title != "Bank statements" || updated.Description != "Last three months" {
		t.Fatalf("expected untouched fields preserved, got %+v", updated)
	}
}

func TestDeleteRequestTwice(t *testing.T) {
	f := newFixture(t)

	created := f.doJSON(t, http.MethodPost, "/requests", map[string]any{
		"collection_id": f.collection.ID,
		"title":         "Bank statements",
	})
	var req Response
	if err := json.Unmarshal(created.Body.Bytes(), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}

	path := "/requests/" + req.ID.String()
	if resp := f.doJSON(t, http.MethodDelete, path, nil); resp.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.Code)
	}
	if resp := f.doJSON(t, http.MethodDelete, path, nil); resp.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", resp.Code)
	}
}
