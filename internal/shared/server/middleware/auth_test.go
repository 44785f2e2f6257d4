package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docstack-backend/internal/shared/auth"
)

func authTestRouter(secret []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(secret))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserIDFromContext(c).String()})
	})
	return r
}

func TestAuthRejectsMissingAndMalformedHeaders(t *testing.T) {
	r := authTestRouter([]byte("test-secret"))

	token, err := auth.SignToken([]byte("other-secret"), uuid.New())
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	cases := map[string]string{
		"missing":      "",
		"wrong scheme": "Basic abc123",
		"bare token":   "abc123",
		"garbage":      "Bearer not-a-token",
		"wrong secret": "Bearer " + token,
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, resp.Code)
		}
	}
}

func TestAuthAcceptsValidTokenAndSetsUser(t *testing.T) {
	secret := []byte("test-secret")
	userID := uuid.New()
	r := authTestRouter(secret)

	token, err := auth.SignToken(secret, userID)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if want := userID.String(); !strings.Contains(resp.Body.String(), want) {
		t.Fatalf("expected body to contain %s, got %s", want, resp.Body.String())
	}
}

func TestAuthLetsPreflightThrough(t *testing.T) {
	r := authTestRouter([]byte("test-secret"))

	req := httptest.NewRequest(http.MethodOptions, "/whoami", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", resp.Code)
	}
}
