package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pastebin/kvpaste/internal/model"
	"pastebin/kvpaste/internal/service"
	"pastebin/kvpaste/pkg/response"
)

type PasteHandler struct {
	pasteService service.PasteService
	logger       *zap.Logger
}

func NewPasteHandler(pasteService service.PasteService, logger *zap.Logger) *PasteHandler {
	return &PasteHandler{pasteService: pasteService, logger: logger}
}

// Content is a pointer so that an empty paste is accepted while a missing
// field is rejected.
type CreatePasteRequest struct {
	Content  *string `json:"content" binding:"required"`
	Filename *string `json:"filename"`
	TTL      *int64  `json:"ttl"`
}

type UpdatePasteRequest struct {
	ID      string  `json:"id" binding:"required"`
	Content *string `json:"content" binding:"required"`
	TTL     *int64  `json:"ttl"`
}

type DeletePasteRequest struct {
	ID string `json:"id" binding:"required"`
}

// Upload stores a new paste under the given filename or a generated id.
func (h *PasteHandler) Upload(c *gin.Context) {
	var req CreatePasteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	id, err := h.pasteService.Create(c.Request.Context(), *req.Content, req.Filename, req.TTL)
	if err != nil {
		h.logger.Error("create paste failed", zap.Error(err))
		response.InternalError(c, err.Error())
		return
	}

	response.Created(c, gin.H{"id": id})
}

// Update overwrites content and expiry of an id, creating it if needed.
func (h *PasteHandler) Update(c *gin.Context) {
	var req UpdatePasteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.pasteService.Update(c.Request.Context(), req.ID, *req.Content, req.TTL); err != nil {
		h.logger.Error("update paste failed", zap.String("id", req.ID), zap.Error(err))
		response.InternalError(c, err.Error())
		return
	}

	response.OK(c, gin.H{"id": req.ID})
}

// Raw writes the stored content verbatim as plain text.
func (h *PasteHandler) Raw(c *gin.Context) {
	id := c.Param("id")
	content, err := h.pasteService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPasteNotFound) {
			c.String(http.StatusNotFound, "Paste not found")
			return
		}
		h.logger.Error("read paste failed", zap.String("id", id), zap.Error(err))
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}

// List reports every live paste with its remaining ttl (-1 permanent, -2 unknown).
// A store that cannot enumerate keys yields an empty list.
func (h *PasteHandler) List(c *gin.Context) {
	files, err := h.pasteService.List(c.Request.Context())
	if err != nil {
		h.logger.Warn("list pastes failed, returning empty list", zap.Error(err))
		files = []model.ListEntry{}
	}

	response.OK(c, gin.H{"files": files})
}

// Delete removes a paste. Deleting a missing id succeeds.
func (h *PasteHandler) Delete(c *gin.Context) {
	var req DeletePasteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.pasteService.Delete(c.Request.Context(), req.ID); err != nil {
		h.logger.Error("delete paste failed", zap.String("id", req.ID), zap.Error(err))
		response.InternalError(c, err.Error())
		return
	}

	response.OK(c, nil)
}
