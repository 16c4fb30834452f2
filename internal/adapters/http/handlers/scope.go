package handlers

import (
	"election-checkin/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// getScope derives the caller's roster scope from the claims the auth
// middleware stashed in Locals. Resolved fresh on every request, never
// cached: a reassigned staffer's next request already carries the new area.
func getScope(c *fiber.Ctx) domain.Scope {
	role, _ := c.Locals("role").(string)
	if domain.Role(role) == domain.RoleAdmin {
		return domain.AdminScope()
	}
	area, _ := c.Locals("assignedArea").(string)
	return domain.StaffScope(area)
}
