package files

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docstack-backend/internal/shared/server/respond"
	"docstack-backend/internal/shared/storage/object"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches file routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/files", h.upload)
	rg.GET("/files", h.list)
	rg.GET("/files/:id", h.get)
	rg.GET("/files/:id/download", h.download)
	rg.PATCH("/files/:id", h.update)
	rg.DELETE("/files/:id", h.remove)
	rg.GET("/requests/:id/files", h.listByRequest)
}

// upload accepts a multipart form with a request_id field and a file part.
func (h *Handler) upload(c *gin.Context) {
	requestID, err := uuid.Parse(c.PostForm("request_id"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid or missing request_id", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "missing file", nil)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unreadable file", nil)
		return
	}
	defer src.Close()

	resp, err := h.Svc.Upload(c.Request.Context(), requestID, fileHeader.Filename, src)
	if err != nil {
		if errors.Is(err, object.ErrInvalidFileName) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
			return
		}
		respond.EntityError(c, err, "file")
		return
	}
	respond.JSON(c, http.StatusCreated, resp)
}

func (h *Handler) list(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.EntityError(c, err, "file")
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
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file id", nil)
		return
	}

	resp, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.EntityError(c, err, "file")
		return
	}
	respond.OK(c, resp)
}

func (h *Handler) download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file id", nil)
		return
	}

	f, rc, err := h.Svc.Download(c.Request.Context(), id)
	if err != nil {
		respond.EntityError(c, err, "file")
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.FileName))
	c.DataFromReader(http.StatusOK, f.FileSize, f.MimeType, rc, nil)
}

func (h *Handler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file id", nil)
		return
	}

	var payload UpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	resp, err := h.Svc.Update(c.Request.Context(), id, payload)
	if err != nil {
		if errors.Is(err, object.ErrInvalidFileName) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
			return
		}
		respond.EntityError(c, err, "file")
		return
	}
	respond.OK(c, resp)
}

func (h *Handler) remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file id", nil)
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		respond.EntityError(c, err, "file")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listByRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request id", nil)
		return
	}

	out, err := h.Svc.ListByRequest(c.Request.Context(), id)
	if err != nil {
		respond.EntityError(c, err, "request")
		return
	}
	if out == nil {
		out = []Response{}
	}
	respond.OK(c, out)
}