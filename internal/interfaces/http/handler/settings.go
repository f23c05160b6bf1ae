package handler

import (
	"github.com/gin-gonic/gin"
	settingsapp "github.com/labakery/backend/internal/application/settings"
)

// SettingsHandler exposes the store configuration singleton
type SettingsHandler struct {
	BaseHandler
	settingsService *settingsapp.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *settingsapp.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get returns the shipping fee and closed dates.
// GET /api/configs and GET /api/admin/configs
func (h *SettingsHandler) Get(c *gin.Context) {
	cfg, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err, "fetch store configuration")
		return
	}
	h.Success(c, cfg)
}

// Update changes the shipping fee and/or closed dates.
// PATCH /api/admin/configs
func (h *SettingsHandler) Update(c *gin.Context) {
	var req settingsapp.UpdateStoreConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "update store configuration")
		return
	}

	cfg, err := h.settingsService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err, "update store configuration")
		return
	}
	h.Success(c, cfg)
}
