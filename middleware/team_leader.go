package middleware

import (
	"github.com/gofiber/fiber/v2"

	"teamnest/config"
	"teamnest/models"
	"teamnest/utils"
)

// RequireTeamLeader guards leader-only team routes. Runs after Protected;
// the team id comes from the "id" query parameter.
func RequireTeamLeader() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)

		if user.Role != models.RoleLeader {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Not a leader")
		}

		teamID := utils.ParseUint(c.Query("id"))
		var team models.Team
		if err := config.DB.Where("id = ? AND leader_id = ?", teamID, user.ID).First(&team).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Not the team leader")
		}

		c.Locals("team", &team)
		return c.Next()
	}
}
