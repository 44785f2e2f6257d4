package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docstack-backend/internal/shared/auth"
	"docstack-backend/internal/shared/server/respond"
)

const userIDKey = "userId"

// Auth validates the bearer token and stores the authenticated user id in
// the gin context. Every failure mode (missing header, wrong scheme, bad
// signature, malformed token, expired token) yields the same 401 so the
// caller cannot distinguish expired from forged.
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			unauthorized(c)
			return
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			unauthorized(c)
			return
		}

		userID, err := auth.VerifyToken(secret, strings.TrimSpace(token))
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(userIDKey, userID.String())
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
}

// UserIDFromContext fetches the authenticated user id set by Auth.
// It returns uuid.Nil on unauthenticated requests.
func UserIDFromContext(c *gin.Context) uuid.UUID {
	if c == nil {
		return uuid.Nil
	}
	id, err := uuid.Parse(c.GetString(userIDKey))
	if err != nil {
		return uuid.Nil
	}
	return id
}
