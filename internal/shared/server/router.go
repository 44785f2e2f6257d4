package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"docstack-backend/internal/clients"
	"docstack-backend/internal/collections"
	"docstack-backend/internal/files"
	"docstack-backend/internal/firms"
	"docstack-backend/internal/requests"
	"docstack-backend/internal/shared/server/middleware"
	"docstack-backend/internal/users"
)

// RouterDeps holds everything the router needs to register routes.
type RouterDeps struct {
	JWTSecret      []byte
	AllowedOrigins []string

	Firms       *firms.Handler
	Users       *users.Handler
	Clients     *clients.Handler
	Collections *collections.Handler
	Requests    *requests.Handler
	Files       *files.Handler
}

// NewRouter builds the gin engine with middleware and routes registered.
// Registration and login are public; everything else sits behind the
// bearer token gate.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.AllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	deps.Users.RegisterPublicRoutes(public)

	protected := r.Group("/")
	protected.Use(middleware.Auth(deps.JWTSecret))
	deps.Firms.RegisterRoutes(protected)
	deps.Users.RegisterRoutes(protected)
	deps.Clients.RegisterRoutes(protected)
	deps.Collections.RegisterRoutes(protected)
	deps.Requests.RegisterRoutes(protected)
	deps.Files.RegisterRoutes(protected)

	return r
}

// Addr returns a normalized listen address for the given port.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
