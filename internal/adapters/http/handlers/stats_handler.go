package handlers

import (
	"errors"

	"election-checkin/internal/core/domain"
	"election-checkin/internal/core/services"
	"election-checkin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StatsHandler handles turnout statistics endpoints
type StatsHandler struct {
	statsService *services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetOverview handles the dashboard overview
// @Summary Turnout overview
// @Description Headline turnout numbers within the caller's scope plus election countdown state
// @Tags Stats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /stats/overview [get]
func (h *StatsHandler) GetOverview(c *fiber.Ctx) error {
	stats, err := h.statsService.GetOverview(c.Context(), getScope(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to get overview")
	}

	return response.Success(c, "Overview retrieved successfully", stats)
}

// GetTurnout handles grouped turnout aggregation
// @Summary Turnout by dimension
// @Description Turnout buckets grouped by neighborhood, voting_group or voting_area
// @Tags Stats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param by query string true "neighborhood | voting_group | voting_area"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /stats/turnout [get]
func (h *StatsHandler) GetTurnout(c *fiber.Ctx) error {
	buckets, err := h.statsService.Aggregate(c.Context(), getScope(c), c.Query("by"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "by must be neighborhood, voting_group or voting_area")
		}
		return response.InternalServerError(c, "Failed to aggregate turnout")
	}

	return response.Success(c, "Turnout retrieved successfully", fiber.Map{
		"buckets": buckets,
	})
}
