package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teamnest/models"
	"teamnest/utils"
)

type LiveSessionController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewLiveSessionController(db *gorm.DB, logger *log.Logger) *LiveSessionController {
	return &LiveSessionController{DB: db, Logger: logger}
}

type CreateLiveSessionRequest struct {
	Topic     string `json:"topic" validate:"required,max=200"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// SessionView is a live session with its status computed against the
// request time.
type SessionView struct {
	models.LiveSession
	Status string `json:"status"`
}

// CreateLiveSession schedules a meeting for the team. Runs behind
// RequireTeamLeader.
func (lc *LiveSessionController) CreateLiveSession(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	team := c.Locals("team").(*models.Team)

	var req CreateLiveSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, err)
	}

	start, err := parseDateTime(req.StartTime)
	if err != nil {
		return utils.HandleError(c, utils.NewValidationError("start_time"))
	}
	end, err := parseDateTime(req.EndTime)
	if err != nil {
		return utils.HandleError(c, utils.NewValidationError("end_time"))
	}
	if !end.After(start) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "End time must be after start time")
	}

	session := models.LiveSession{
		OwnerID:   user.ID,
		TeamID:    team.ID,
		Topic:     req.Topic,
		StartTime: start,
		EndTime:   end,
	}

	if err := lc.DB.Create(&session).Error; err != nil {
		lc.Logger.Printf("failed to create live session for team %d: %v", team.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create live session")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, session, "Live session created successfully")
}

// DeleteLiveSession removes a session. Only its creator may delete it.
func (lc *LiveSessionController) DeleteLiveSession(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	sessionID := utils.ParseUint(c.Query("sessionId"))

	var session models.LiveSession
	if err := lc.DB.First(&session, sessionID).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Live session"))
	}
	if session.OwnerID != user.ID {
		return utils.HandleError(c, utils.NewAuthorizationError("Only the session owner can delete it"))
	}

	if err := lc.DB.Delete(&session).Error; err != nil {
		lc.Logger.Printf("failed to delete live session %d: %v", session.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete live session")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, nil, "Live session deleted successfully")
}

// GetAllLiveSessions lists the team's sessions with computed status.
func (lc *LiveSessionController) GetAllLiveSessions(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	teamID := utils.ParseUint(c.Query("id"))

	if _, err := teamAccess(lc.DB, teamID, user); err != nil {
		return utils.HandleError(c, err)
	}

	var sessions []models.LiveSession
	if err := lc.DB.Where("team_id = ?", teamID).
		Order("start_time ASC").
		Find(&sessions).Error; err != nil {
		lc.Logger.Printf("failed to list live sessions for team %d: %v", teamID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch live sessions")
	}

	now := time.Now()
	views := make([]SessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, SessionView{LiveSession: s, Status: s.Status(now)})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, views, "Live sessions fetched successfully")
}
