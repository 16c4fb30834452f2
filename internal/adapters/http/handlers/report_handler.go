package handlers

import (
	"election-checkin/internal/core/services"
	"election-checkin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles roster export endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// ExportVoters handles building the roster export
// @Summary Export roster
// @Description Get the filtered roster as ordered export rows within the caller's scope
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param area query string false "Voting area filter"
// @Param group query string false "Voting group filter"
// @Param status query string false "voted | not_voted"
// @Param q query string false "Search term"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /reports/voters [get]
func (h *ReportHandler) ExportVoters(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" && status != "voted" && status != "not_voted" {
		return response.BadRequest(c, "Status must be voted or not_voted")
	}

	rows, err := h.reportService.ExportRows(c.Context(), getScope(c), services.ExportFilters{
		Area:   c.Query("area"),
		Group:  c.Query("group"),
		Status: status,
		Term:   c.Query("q"),
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to build export")
	}

	return response.Success(c, "Export built successfully", fiber.Map{
		"header": h.reportService.ExportHeader(),
		"rows":   rows,
	})
}
