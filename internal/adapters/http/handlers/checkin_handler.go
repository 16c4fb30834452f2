package handlers

import (
	"errors"

	"election-checkin/internal/core/domain"
	"election-checkin/internal/core/services"
	"election-checkin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CheckinHandler handles the check-in station endpoints
type CheckinHandler struct {
	checkinService *services.CheckinService
}

// NewCheckinHandler creates a new check-in handler
func NewCheckinHandler(checkinService *services.CheckinService) *CheckinHandler {
	return &CheckinHandler{
		checkinService: checkinService,
	}
}

// Lookup handles looking up a voter by ID card at the station
// @Summary Lookup voter for check-in
// @Description Find a voter by ID card number within the caller's scope
// @Tags Checkin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id_card path string true "ID card number"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /checkin/{id_card} [get]
func (h *CheckinHandler) Lookup(c *fiber.Ctx) error {
	voter, err := h.checkinService.Lookup(c.Context(), getScope(c), c.Params("id_card"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVoterNotFound):
			return response.NotFound(c, "Voter not found")
		case errors.Is(err, domain.ErrOutOfScope):
			return response.Forbidden(c, "Voter belongs to another voting area")
		default:
			return response.InternalServerError(c, "Failed to look up voter")
		}
	}

	return response.Success(c, "Voter retrieved successfully", fiber.Map{
		"voter": voter,
	})
}

// CheckIn handles marking a voter as having voted
// @Summary Check in voter
// @Description Mark a voter as having voted; repeating the call is a no-op success
// @Tags Checkin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id_card path string true "ID card number"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /checkin/{id_card} [post]
func (h *CheckinHandler) CheckIn(c *fiber.Ctx) error {
	result, err := h.checkinService.CheckIn(c.Context(), getScope(c), c.Params("id_card"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVoterNotFound):
			return response.NotFound(c, "Voter not found")
		case errors.Is(err, domain.ErrOutOfScope):
			return response.Forbidden(c, "Voter belongs to another voting area")
		default:
			return response.InternalServerError(c, "Failed to check in voter")
		}
	}

	message := "Voter checked in successfully"
	if result.AlreadyVoted {
		message = "Voter already checked in"
	}

	return response.Success(c, message, result)
}
