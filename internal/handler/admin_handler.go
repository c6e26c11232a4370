package handler

import (
	"github.com/gin-gonic/gin"

	"pastebin/kvpaste/internal/service"
	"pastebin/kvpaste/pkg/response"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

type VerifyRequest struct {
	Pin string `json:"pin"`
}

// Verify checks a pin against the admin secret.
func (h *AdminHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.adminService.VerifyPin(req.Pin); err != nil {
		response.Unauthorized(c, "Invalid PIN")
		return
	}

	response.OK(c, nil)
}
