package firms

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

// RegisterRoutes attaches firm routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/firms", h.create)
	rg.GET("/firms", h.list)
	rg.GET("/firms/:id", h.get)
	rg.PATCH("/firms/:id", h.update)
	rg.DELETE("/firms/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	var payload CreatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	detail, err := h.Svc.Create(c.Request.Context(), payload)
	if err != nil {
		respond.EntityError(c, err, "firm")
		return
	}
	respond.JSON(c, http.StatusCreated, detail)
}

func (h *Handler) list(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.EntityError(c, err, "firm")
		return
	}
	if out == nil {
		out = []Firm{}
	}
	respond.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid firm id", nil)
		return
	}

	detail, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.EntityError(c, err, "firm")
		return
	}
	respond.OK(c, detail)
}

func (h *Handler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid firm id", nil)
		return
	}

	var payload UpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	detail, err := h.Svc.Update(c.Request.Context(), id, payload)
	if err != nil {
		respond.EntityError(c, err, "firm")
		return
	}
	respond.OK(c, detail)
}

func (h *Handler) remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid firm id", nil)
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		respond.EntityError(c, err, "firm")
		return
	}
	c.Status(http.StatusNoContent)
}
