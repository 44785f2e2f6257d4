package clients

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docstack-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches client routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/clients", h.create)
	rg.GET("/clients", h.list)
	rg.GET("/clients/:id", h.get)
	rg.PATCH("/clients/:id", h.update)
	rg.DELETE("/clients/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	var payload CreatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	resp, err := h.Svc.Create(c.Request.Context(), payload)
	if err != nil {
		respond.EntityError(c, err, "client")
		return
	}
	respond.JSON(c, http.StatusCreated, resp)
}

func (h *Handler) list(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.EntityError(c, err, "client")
		return
	}
	if out == nil {
		out = []Response{}
	}
	respond.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid client id", nil)
		return
	}

	resp, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.EntityError(c, err, "client")
		return
	}
	respond.OK(c, resp)
}

func (h *Handler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid client id", nil)
		return
	}

	var payload UpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	resp, err := h.Svc.Update(c.Request.Context(), id, payload)
	if err != nil {
		respond.EntityError(c, err, "client")
		return
	}
	respond.OK(c, resp)
}

func (h *Handler) remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid client id", nil)
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		respond.EntityError(c, err, "client")
		return
	}
	c.Status(http.StatusNoContent)
}
