package handlers

import (
	"errors"

	"election-checkin/internal/core/domain"
	"election-checkin/internal/core/services"
	"election-checkin/internal/pkg/pagination"
	"election-checkin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// VoterHandler handles roster endpoints
type VoterHandler struct {
	voterService  *services.VoterService
	importService *services.ImportService
}

// NewVoterHandler creates a new voter handler
func NewVoterHandler(voterService *services.VoterService, importService *services.ImportService) *VoterHandler {
	return &VoterHandler{
		voterService:  voterService,
		importService: importService,
	}
}

// ListVoters handles listing voters within the caller's scope
// @Summary List voters
// @Description Get a paginated roster slice within the caller's scope
// @Tags Voters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param area query string false "Voting area filter"
// @Param group query string false "Voting group filter"
// @Param status query string false "voted | not_voted"
// @Param q query string false "Search term"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /voters [get]
func (h *VoterHandler) ListVoters(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	scope := getScope(c)

	status := c.Query("status")
	if status != "" && status != "voted" && status != "not_voted" {
		return response.BadRequest(c, "Status must be voted or not_voted")
	}

	voters, total, err := h.voterService.List(c.Context(), services.ListVotersInput{
		Scope:  scope,
		Area:   c.Query("area"),
		Group:  c.Query("group"),
		Status: status,
		Term:   c.Query("q"),
		Offset: params.Offset,
		Limit:  params.Limit,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to list voters")
	}

	return response.Success(c, "Voters retrieved successfully", pagination.NewResponse(voters, params, total))
}

// SearchVoters handles roster search with auto-resolve
// @Summary Search voters
// @Description Search the roster within scope; flags an unambiguous single hit
// @Tags Voters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search term"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /voters/search [get]
func (h *VoterHandler) SearchVoters(c *fiber.Ctx) error {
	result, err := h.voterService.Search(c.Context(), getScope(c), c.Query("q"))
	if err != nil {
		return response.InternalServerError(c, "Failed to search voters")
	}

	return response.Success(c, "Search completed", result)
}

// GetVoter handles getting a voter by ID
// @Summary Get voter by ID
// @Description Get a voter visible within the caller's scope
// @Tags Voters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voter ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /voters/{id} [get]
func (h *VoterHandler) GetVoter(c *fiber.Ctx) error {
	voter, err := h.voterService.GetByID(c.Context(), getScope(c), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVoterNotFound):
			return response.NotFound(c, "Voter not found")
		case errors.Is(err, domain.ErrOutOfScope):
			return response.Forbidden(c, "Voter belongs to another voting area")
		default:
			return response.InternalServerError(c, "Failed to get voter")
		}
	}

	return response.Success(c, "Voter retrieved successfully", fiber.Map{
		"voter": voter,
	})
}

// CreateVoterRequest represents create voter request body
type CreateVoterRequest struct {
	FullName     string `json:"full_name"`
	IDCard       string `json:"id_card"`
	Address      string `json:"address"`
	Neighborhood string `json:"neighborhood"`
	Constituency string `json:"constituency"`
	VotingGroup  string `json:"voting_group"`
	VotingArea   string `json:"voting_area"`
}

// CreateVoter handles registering a voter (Admin only)
// @Summary Create voter
// @Description Register a single voter on the roster (Admin only)
// @Tags Voters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateVoterRequest true "Voter data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /voters [post]
func (h *VoterHandler) CreateVoter(c *fiber.Ctx) error {
	var req CreateVoterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	voter, err := h.voterService.Create(c.Context(), &services.CreateVoterInput{
		FullName:     req.FullName,
		IDCard:       req.IDCard,
		Address:      req.Address,
		Neighborhood: req.Neighborhood,
		Constituency: req.Constituency,
		VotingGroup:  req.VotingGroup,
		VotingArea:   req.VotingArea,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingIdentity):
			return response.BadRequest(c, "ID card number is required")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Full name is required")
		case errors.Is(err, domain.ErrDuplicateIdentity):
			return response.Conflict(c, "ID card number already registered")
		default:
			return response.InternalServerError(c, "Failed to create voter")
		}
	}

	return response.Created(c, "Voter created successfully", fiber.Map{
		"voter": voter,
	})
}

// UpdateVoterRequest represents update voter request body
type UpdateVoterRequest struct {
	FullName     *string `json:"full_name"`
	IDCard       *string `json:"id_card"`
	Address      *string `json:"address"`
	Neighborhood *string `json:"neighborhood"`
	Constituency *string `json:"constituency"`
	VotingGroup  *string `json:"voting_group"`
	VotingArea   *string `json:"voting_area"`
}

// UpdateVoter handles editing a voter (Admin only)
// @Summary Update voter
// @Description Edit a voter's roster fields (Admin only)
// @Tags Voters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voter ID"
// @Param body body UpdateVoterRequest true "Update data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /voters/{id} [put]
func (h *VoterHandler) UpdateVoter(c *fiber.Ctx) error {
	var req UpdateVoterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	voter, err := h.voterService.Update(c.Context(), c.Params("id"), &services.UpdateVoterInput{
		FullName:     req.FullName,
		IDCard:       req.IDCard,
		Address:      req.Address,
		Neighborhood: req.Neighborhood,
		Constituency: req.Constituency,
		VotingGroup:  req.VotingGroup,
		VotingArea:   req.VotingArea,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVoterNotFound):
			return response.NotFound(c, "Voter not found")
		case errors.Is(err, domain.ErrMissingIdentity):
			return response.BadRequest(c, "ID card number cannot be blank")
		case errors.Is(err, domain.ErrDuplicateIdentity):
			return response.Conflict(c, "ID card number already registered")
		default:
			return response.InternalServerError(c, "Failed to update voter")
		}
	}

	return response.Success(c, "Voter updated successfully", fiber.Map{
		"voter": voter,
	})
}

// DeleteVoter handles removing a voter (Admin only)
// @Summary Delete voter
// @Description Permanently remove a voter from the roster (Admin only)
// @Tags Voters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voter ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /voters/{id} [delete]
func (h *VoterHandler) DeleteVoter(c *fiber.Ctx) error {
	if err := h.voterService.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrVoterNotFound) {
			return response.NotFound(c, "Voter not found")
		}
		return response.InternalServerError(c, "Failed to delete voter")
	}

	return response.Success(c, "Voter deleted successfully", nil)
}

// DeleteAllVoters handles clearing the roster (Admin only)
// @Summary Clear roster
// @Description Permanently remove every voter from the roster (Admin only)
// @Tags Voters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /voters [delete]
func (h *VoterHandler) DeleteAllVoters(c *fiber.Ctx) error {
	if err := h.voterService.DeleteAll(c.Context()); err != nil {
		return response.InternalServerError(c, "Failed to clear roster")
	}

	return response.Success(c, "Roster cleared successfully", nil)
}

// ImportVotersRequest represents import request body
type ImportVotersRequest struct {
	Rows []map[string]string `json:"rows"`
}

// ImportVoters handles importing roster rows (Admin only)
// @Summary Import voters
// @Description Import spreadsheet rows into the roster; returns accepted and rejected partitions (Admin only)
// @Tags Voters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ImportVotersRequest true "Rows keyed by spreadsheet column headers"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /voters/import [post]
func (h *VoterHandler) ImportVoters(c *fiber.Ctx) error {
	var req ImportVotersRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if len(req.Rows) == 0 {
		return response.BadRequest(c, "No rows to import")
	}

	result, err := h.importService.ImportRows(c.Context(), req.Rows)
	if err != nil {
		return response.InternalServerError(c, "Failed to import voters")
	}

	return response.Success(c, "Import completed", result)
}
