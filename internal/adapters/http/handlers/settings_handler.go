package handlers

import (
	"errors"

	"election-checkin/internal/core/domain"
	"election-checkin/internal/core/services"
	"election-checkin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SettingsHandler handles election settings endpoints
type SettingsHandler struct {
	settingsService *services.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// GetSettings handles reading election settings
// @Summary Get election settings
// @Description Get election-wide settings (project name, end time)
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /settings/election [get]
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settingsService.Get(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get settings")
	}

	return response.Success(c, "Settings retrieved successfully", settings)
}

// UpdateSettingsRequest represents settings update request body
type UpdateSettingsRequest struct {
	ProjectName string `json:"project_name"`
	EndTime     string `json:"end_time"`
}

// UpdateSettings handles writing election settings (Admin only)
// @Summary Update election settings
// @Description Update election-wide settings; end time is RFC3339 or empty to clear (Admin only)
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateSettingsRequest true "Settings"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /settings/election [put]
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var req UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	settings, err := h.settingsService.Update(c.Context(), &services.ElectionSettings{
		ProjectName: req.ProjectName,
		EndTime:     req.EndTime,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "End time must be RFC3339 or empty")
		}
		return response.InternalServerError(c, "Failed to update settings")
	}

	return response.Success(c, "Settings updated successfully", settings)
}
