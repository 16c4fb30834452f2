package handlers

import (
	"errors"
	"strconv"

	"election-checkin/internal/core/domain"
	"election-checkin/internal/core/services"
	"election-checkin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AreaHandler handles voting area catalog endpoints
type AreaHandler struct {
	areaService *services.AreaService
}

// NewAreaHandler creates a new area handler
func NewAreaHandler(areaService *services.AreaService) *AreaHandler {
	return &AreaHandler{
		areaService: areaService,
	}
}

// ListAreas handles listing the area catalog
// @Summary List voting areas
// @Description Get all voting areas
// @Tags Areas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /areas [get]
func (h *AreaHandler) ListAreas(c *fiber.Ctx) error {
	areas, err := h.areaService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list voting areas")
	}

	return response.Success(c, "Voting areas retrieved successfully", fiber.Map{
		"areas": areas,
	})
}

// CreateAreaRequest represents create area request body
type CreateAreaRequest struct {
	Name string `json:"name"`
}

// CreateArea handles adding a voting area (Admin only)
// @Summary Create voting area
// @Description Add a voting area to the catalog (Admin only)
// @Tags Areas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateAreaRequest true "Area data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /areas [post]
func (h *AreaHandler) CreateArea(c *fiber.Ctx) error {
	var req CreateAreaRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	area, err := h.areaService.Create(c.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Area name is required")
		case errors.Is(err, domain.ErrAreaAlreadyExists):
			return response.Conflict(c, "Voting area already exists")
		default:
			return response.InternalServerError(c, "Failed to create voting area")
		}
	}

	return response.Created(c, "Voting area created successfully", fiber.Map{
		"area": area,
	})
}

// DeleteArea handles removing a voting area (Admin only)
// @Summary Delete voting area
// @Description Remove a voting area from the catalog (Admin only)
// @Tags Areas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Area ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /areas/{id} [delete]
func (h *AreaHandler) DeleteArea(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid area ID")
	}

	if err := h.areaService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrAreaNotFound) {
			return response.NotFound(c, "Voting area not found")
		}
		return response.InternalServerError(c, "Failed to delete voting area")
	}

	return response.Success(c, "Voting area deleted successfully", nil)
}
