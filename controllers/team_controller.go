package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teamnest/models"
	"teamnest/utils"
)

type TeamController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewTeamController(db *gorm.DB, logger *log.Logger) *TeamController {
	return &TeamController{
		DB:     db,
		Logger: logger,
	}
}

type CreateTeamRequest struct {
	TeamName    string `json:"teamname" validate:"required,max=60"`
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required,max=60"`
	Thumbnail   string `json:"thumbnail" validate:"required,url"`
}

type UpdateTeamRequest struct {
	TeamName    string `json:"teamname" validate:"required,max=60"`
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required,max=60"`
}

type UpdateThumbnailRequest struct {
	Thumbnail string `json:"thumbnail" validate:"required,url"`
}

type JoinTeamRequest struct {
	TeamID uint `json:"id" validate:"required"`
}

type MemberActionRequest struct {
	MemberID uint `json:"member_id" validate:"required"`
}

// TeamSummary is one row of the team directory listing
type TeamSummary struct {
	ID             uint   `json:"id"`
	TeamName       string `json:"teamname"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	Thumbnail      string `json:"thumbnail"`
	LeaderName     string `json:"leader_name"`
	LeaderUsername string `json:"leader_username"`
	LeaderEmail    string `json:"leader_email"`
	MembersCount   int64  `json:"members_count"`
}

// MemberInfo is a membership row joined with its user profile
type MemberInfo struct {
	MembershipID uint   `json:"membership_id"`
	MemberID     uint   `json:"member_id"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	FullName     string `json:"full_name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	AvatarURL    string `json:"avatar_url"`
}

// MyTeam is one row of a user's own team listing
type MyTeam struct {
	MembershipID uint   `json:"membership_id"`
	TeamID       uint   `json:"team_id"`
	TeamName     string `json:"teamname"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	Thumbnail    string `json:"thumbnail"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	LeaderName   string `json:"leader_name"`
	LeaderEmail  string `json:"leader_email"`
}

func (tc *TeamController) CreateTeam(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, err)
	}

	team := models.Team{
		TeamName:    req.TeamName,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Thumbnail:   req.Thumbnail,
		LeaderID:    user.ID,
	}

	// Creating the team and its leader membership is one unit
	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		member := models.TeamMember{
			TeamID:   team.ID,
			MemberID: user.ID,
			Role:     models.RoleLeader,
			Status:   models.MemberStatusAccepted,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		tc.Logger.Printf("failed to create team for user %d: %v", user.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Something went wrong while creating the team")
	}

	user.Sanitize()
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"user":        user,
		"createdTeam": team,
	}, "Team created successfully")
}

// UpdateTeam edits team details. Runs behind RequireTeamLeader.
func (tc *TeamController) UpdateTeam(c *fiber.Ctx) error {
	team := c.Locals("team").(*models.Team)

	var req UpdateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, err)
	}

	updates := map[string]interface{}{
		"team_name":   req.TeamName,
		"title":       req.Title,
		"description": req.Description,
		"category":    req.Category,
	}
	if err := tc.DB.Model(team).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update team")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, team, "Team updated successfully")
}

// UpdateThumbnail swaps the team's thumbnail URL. Runs behind
// RequireTeamLeader.
func (tc *TeamController) UpdateThumbnail(c *fiber.Ctx) error {
	team := c.Locals("team").(*models.Team)

	var req UpdateThumbnailRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, err)
	}

	if err := tc.DB.Model(team).Update("thumbnail", req.Thumbnail).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update thumbnail")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, team, "Team updated successfully")
}

func (tc *TeamController) JoinTeam(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req JoinTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, err)
	}

	var team models.Team
	if err := tc.DB.First(&team, req.TeamID).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Team"))
	}

	var membership models.TeamMember
	err := tc.DB.Where("team_id = ? AND member_id = ?", team.ID, user.ID).First(&membership).Error
	if err == nil {
		if membership.Status == models.MemberStatusAccepted {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "You are already a member of this team")
		}
		return utils.ErrorResponse(c, fiber.StatusConflict, "You have already requested to join this team")
	}

	membership = models.TeamMember{
		TeamID:   team.ID,
		MemberID: user.ID,
		Role:     models.RoleMember,
		Status:   models.MemberStatusPending,
	}
	if err := tc.DB.Create(&membership).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to request joining the team")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, membership, "Request to join team sent successfully")
}

func (tc *TeamController) LeaveTeam(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	teamID := utils.ParseUint(c.Query("id"))

	var team models.Team
	if err := tc.DB.First(&team, teamID).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Team"))
	}

	var membership models.TeamMember
	if err := tc.DB.Where("team_id = ? AND member_id = ?", team.ID, user.ID).
		First(&membership).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "You are not a member of this team")
	}

	// Hard delete so the (team_id, member_id) unique index lets the user
	// join again later.
	if err := tc.DB.Unscoped().Delete(&membership).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to leave the team")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, nil, "You have left the team successfully")
}

// ViewInvitations lists pending join requests for a team (leader only)
func (tc *TeamController) ViewInvitations(c *fiber.Ctx) error {
	team := c.Locals("team").(*models.Team)

	var invitations []MemberInfo
	if err := tc.DB.Table("team_members").
		Select("team_members.id AS membership_id, team_members.member_id, team_members.role, team_members.status, users.full_name, users.username, users.email, users.avatar_url").
		Joins("JOIN users ON users.id = team_members.member_id").
		Where("team_members.team_id = ? AND team_members.status = ? AND team_members.deleted_at IS NULL",
			team.ID, models.MemberStatusPending).
		Scan(&invitations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch join invitations")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, invitations, "Join invitations fetched successfully")
}

func (tc *TeamController) AcceptInvitation(c *fiber.Ctx) error {
	team := c.Locals("team").(*models.Team)

	var req MemberActionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, err)
	}

	var membership models.TeamMember
	if err := tc.DB.Where("team_id = ? AND member_id = ?", team.ID, req.MemberID).
		First(&membership).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Member"))
	}

	if err := tc.DB.Model(&membership).Update("status", models.MemberStatusAccepted).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to accept member")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, membership, "Member accepted successfully")
}

func (tc *TeamController) RejectInvitation(c *fiber.Ctx) error {
	team := c.Locals("team").(*models.Team)

	var req MemberActionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, err)
	}

	var membership models.TeamMember
	if err := tc.DB.Where("team_id = ? AND member_id = ?", team.ID, req.MemberID).
		First(&membership).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Member"))
	}

	if err := tc.DB.Unscoped().Delete(&membership).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to reject member")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, []interface{}{}, "Member rejected successfully")
}

func (tc *TeamController) RemoveMember(c *fiber.Ctx) error {
	team := c.Locals("team").(*models.Team)
	memberID := utils.ParseUint(c.Query("memberId"))

	var membership models.TeamMember
	if err := tc.DB.Where("team_id = ? AND member_id = ?", team.ID, memberID).
		First(&membership).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Member"))
	}

	if err := tc.DB.Unscoped().Delete(&membership).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to remove member")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, []interface{}{}, "Member removed successfully")
}

// GetAllTeams lists every team with leader info and member counts,
// optionally filtered by exact team name.
func (tc *TeamController) GetAllTeams(c *fiber.Ctx) error {
	query := c.Query("input")

	sql := `
        SELECT t.id, t.team_name, t.title, t.description, t.category, t.thumbnail,
               u.full_name AS leader_name, u.username AS leader_username, u.email AS leader_email,
               COUNT(tm.id) AS members_count
        FROM teams t
        JOIN users u ON u.id = t.leader_id
        LEFT JOIN team_members tm ON tm.team_id = t.id AND tm.deleted_at IS NULL
        WHERE t.deleted_at IS NULL`
	args := []interface{}{}
	if query != "" {
		sql += " AND t.team_name = ?"
		args = append(args, query)
	}
	sql += " GROUP BY t.id, u.id ORDER BY t.created_at"

	var teams []TeamSummary
	if err := tc.DB.Raw(sql, args...).Scan(&teams).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch teams")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, teams, "Teams fetched successfully")
}

func (tc *TeamController) GetMyTeamsForLeader(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	return tc.listMyTeams(c, user.ID, models.RoleLeader, "")
}

func (tc *TeamController) GetMyTeamsForMember(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	return tc.listMyTeams(c, user.ID, models.RoleMember, models.MemberStatusAccepted)
}

func (tc *TeamController) listMyTeams(c *fiber.Ctx, userID uint, role, status string) error {
	q := tc.DB.Table("team_members").
		Select("team_members.id AS membership_id, teams.id AS team_id, teams.team_name, teams.title, teams.category, teams.thumbnail, team_members.role, team_members.status, leaders.full_name AS leader_name, leaders.email AS leader_email").
		Joins("JOIN teams ON teams.id = team_members.team_id AND teams.deleted_at IS NULL").
		Joins("JOIN users leaders ON leaders.id = teams.leader_id").
		Where("team_members.member_id = ? AND team_members.role = ? AND team_members.deleted_at IS NULL", userID, role)
	if status != "" {
		q = q.Where("team_members.status = ?", status)
	}

	var teams []MyTeam
	if err := q.Scan(&teams).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch teams")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, teams, "My teams fetched successfully")
}

// GetDashboardLeader returns the leader's view of a team: the team, its
// accepted members with profiles, and the leader's own profile.
func (tc *TeamController) GetDashboardLeader(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	teamID := utils.ParseUint(c.Query("id"))

	var team models.Team
	if err := tc.DB.First(&team, teamID).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Team"))
	}
	if team.LeaderID != user.ID {
		return utils.HandleError(c, utils.NewAuthorizationError("unauthorized"))
	}

	members, err := tc.acceptedMembers(team.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch team info")
	}

	user.Sanitize()
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"team":    team,
		"members": members,
		"leader":  user,
	}, "Team info fetched successfully")
}

// GetDashboardMember returns the member's view of a team; requires an
// accepted membership.
func (tc *TeamController) GetDashboardMember(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	teamID := utils.ParseUint(c.Query("id"))

	var team models.Team
	if err := tc.DB.First(&team, teamID).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Team"))
	}

	var membership models.TeamMember
	if err := tc.DB.Where("team_id = ? AND member_id = ? AND role = ? AND status = ?",
		team.ID, user.ID, models.RoleMember, models.MemberStatusAccepted).
		First(&membership).Error; err != nil {
		return utils.HandleError(c, utils.NewAuthorizationError("unauthorized"))
	}

	members, err := tc.acceptedMembers(team.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch team info")
	}

	var leader models.User
	if err := tc.DB.First(&leader, team.LeaderID).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Leader"))
	}
	leader.Sanitize()

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"team":    team,
		"members": members,
		"leader":  leader,
	}, "Team info fetched successfully")
}

func (tc *TeamController) acceptedMembers(teamID uint) ([]MemberInfo, error) {
	var members []MemberInfo
	err := tc.DB.Table("team_members").
		Select("team_members.id AS membership_id, team_members.member_id, team_members.role, team_members.status, users.full_name, users.username, users.email, users.avatar_url").
		Joins("JOIN users ON users.id = team_members.member_id").
		Where("team_members.team_id = ? AND team_members.status = ? AND team_members.deleted_at IS NULL",
			teamID, models.MemberStatusAccepted).
		Scan(&members).Error
	return members, err
}

// DeleteTeam removes a team and everything hanging off it: memberships,
// materials, tasks, those tasks' submissions, live sessions, and all
// feedback attached to the team, its tasks or its materials.
func (tc *TeamController) DeleteTeam(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	teamID := utils.ParseUint(c.Query("id"))

	var team models.Team
	if err := tc.DB.First(&team, teamID).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Team"))
	}
	if team.LeaderID != user.ID {
		return utils.HandleError(c, utils.NewAuthorizationError("Not team leader"))
	}

	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint
		if err := tx.Model(&models.Task{}).Where("team_id = ?", team.ID).
			Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		var materialIDs []uint
		if err := tx.Model(&models.Material{}).Where("team_id = ?", team.ID).
			Pluck("id", &materialIDs).Error; err != nil {
			return err
		}

		// Submissions, feedback and memberships are hard deleted: their
		// composite unique indexes would otherwise block re-creation.
		if len(taskIDs) > 0 {
			if err := tx.Unscoped().Where("task_id IN ?", taskIDs).Delete(&models.Submission{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("for_task_id IN ?", taskIDs).Delete(&models.Feedback{}).Error; err != nil {
				return err
			}
		}
		if len(materialIDs) > 0 {
			if err := tx.Unscoped().Where("for_material_id IN ?", materialIDs).Delete(&models.Feedback{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("for_team_id = ?", team.ID).Delete(&models.Feedback{}).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", team.ID).Delete(&models.LiveSession{}).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", team.ID).Delete(&models.Material{}).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", team.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("team_id = ?", team.ID).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&team).Error
	})
	if err != nil {
		tc.Logger.Printf("failed to delete team %d: %v", team.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete team")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, nil, "Team deleted successfully")
}
