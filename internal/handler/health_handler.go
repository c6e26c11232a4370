package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pastebin/kvpaste/internal/repository"
	"pastebin/kvpaste/pkg/response"
)

const livenessMessage = "Pastebin API is running"

type HealthHandler struct {
	store repository.PasteStore
}

func NewHealthHandler(store repository.PasteStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// Root answers the liveness probe without touching the store.
func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, livenessMessage)
}

// Healthz reports whether the store is reachable.
func (h *HealthHandler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		response.ServiceUnavailable(c, "store unreachable: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
