package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"teamnest/models"
	"teamnest/sentiment"
	"teamnest/utils"
)

// FeedbackController persists opinion records. Duplicate handling follows
// the per-type policy table in models: team/member feedback upserts in
// place, task/material feedback rejects a second submission.
type FeedbackController struct {
	DB         *gorm.DB
	Logger     *log.Logger
	Classifier *sentiment.Client
}

func NewFeedbackController(db *gorm.DB, logger *log.Logger, classifier *sentiment.Client) *FeedbackController {
	return &FeedbackController{
		DB:         db,
		Logger:     logger,
		Classifier: classifier,
	}
}

type TextFeedbackRequest struct {
	Text string `json:"text" validate:"required"`
}

type RatedFeedbackRequest struct {
	Text           string `json:"text" validate:"required"`
	Communication  int    `json:"communication" validate:"min=0,max=5"`
	Collaboration  int    `json:"collaboration" validate:"min=0,max=5"`
	Accountability int    `json:"accountability" validate:"min=0,max=5"`
}

// GiveTeamFeedback lets an accepted member review their team. Emotion is
// classified by the external sentiment service; resubmission updates the
// existing record.
func (fc *FeedbackController) GiveTeamFeedback(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	teamID := utils.ParseUint(c.Query("id"))

	var team models.Team
	if err := fc.DB.First(&team, teamID).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Team"))
	}

	var membership models.TeamMember
	if err := fc.DB.Where("team_id = ? AND member_id = ? AND role = ? AND status = ?",
		team.ID, user.ID, models.RoleMember, models.MemberStatusAccepted).
		First(&membership).Error; err != nil {
		return utils.HandleError(c, utils.NewAuthorizationError("unauthorized"))
	}

	var req TextFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, err)
	}

	emotion, err := fc.Classifier.Classify(req.Text, sentiment.ModeRemote)
	if err != nil {
		return utils.HandleError(c, err)
	}

	feedback := models.Feedback{
		ProviderID: user.ID,
		Type:       models.FeedbackTypeTeam,
		TargetID:   team.ID,
		Text:       req.Text,
		Emotion:    emotion,
		ForTeamID:  utils.Pointer(team.ID),
	}
	return fc.store(c, &feedback, "Feedback already given")
}

// GiveMemberFeedback lets the team leader review one member.
func (fc *FeedbackController) GiveMemberFeedback(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	teamID := utils.ParseUint(c.Query("id"))
	memberID := utils.ParseUint(c.Query("memberId"))

	var member models.User
	if err := fc.DB.First(&member, memberID).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Member"))
	}

	var team models.Team
	if err := fc.DB.First(&team, teamID).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Team"))
	}
	if team.LeaderID != user.ID {
		return utils.HandleError(c, utils.NewAuthorizationError("unauthorized"))
	}

	var req TextFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, err)
	}

	emotion, err := fc.Classifier.Classify(req.Text, sentiment.ModeRemote)
	if err != nil {
		return utils.HandleError(c, err)
	}

	feedback := models.Feedback{
		ProviderID:  user.ID,
		Type:        models.FeedbackTypeMember,
		TargetID:    member.ID,
		Text:        req.Text,
		Emotion:     emotion,
		ForMemberID: utils.Pointer(member.ID),
		ForTeamID:   utils.Pointer(team.ID),
	}
	return fc.store(c, &feedback, "Feedback already given")
}

// GiveTaskFeedback lets an accepted member rate a task once. Emotion uses
// the keyword heuristic; a second submission is rejected.
func (fc *FeedbackController) GiveTaskFeedback(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	taskID := utils.ParseUint(c.Query("taskId"))

	var task models.Task
	if err := fc.DB.First(&task, taskID).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Task"))
	}

	if err := fc.requireAcceptedMember(task.TeamID, user.ID); err != nil {
		return utils.HandleError(c, err)
	}

	var req RatedFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, err)
	}

	emotion, _ := fc.Classifier.Classify(req.Text, sentiment.ModeHeuristic)

	feedback := models.Feedback{
		ProviderID:     user.ID,
		Type:           models.FeedbackTypeTask,
		TargetID:       task.ID,
		Text:           req.Text,
		Emotion:        emotion,
		Communication:  req.Communication,
		Collaboration:  req.Collaboration,
		Accountability: req.Accountability,
		ForTaskID:      utils.Pointer(task.ID),
	}
	return fc.store(c, &feedback, "You have already given feedback for this task")
}

// GiveMaterialFeedback mirrors task feedback for materials.
func (fc *FeedbackController) GiveMaterialFeedback(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	materialID := utils.ParseUint(c.Query("materialId"))

	var material models.Material
	if err := fc.DB.First(&material, materialID).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Material"))
	}

	if err := fc.requireAcceptedMember(material.TeamID, user.ID); err != nil {
		return utils.HandleError(c, err)
	}

	var req RatedFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, err)
	}

	emotion, _ := fc.Classifier.Classify(req.Text, sentiment.ModeHeuristic)

	feedback := models.Feedback{
		ProviderID:     user.ID,
		Type:           models.FeedbackTypeMaterial,
		TargetID:       material.ID,
		Text:           req.Text,
		Emotion:        emotion,
		Communication:  req.Communication,
		Collaboration:  req.Collaboration,
		Accountability: req.Accountability,
		ForMaterialID:  utils.Pointer(material.ID),
	}
	return fc.store(c, &feedback, "You have already given feedback for this material")
}

// FeedbackByTarget returns every feedback record for one target entity.
func (fc *FeedbackController) FeedbackByTarget(feedbackType string, targetID uint) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := fc.DB.Where("type = ? AND target_id = ?", feedbackType, targetID).Find(&feedbacks).Error
	return feedbacks, err
}

func (fc *FeedbackController) requireAcceptedMember(teamID, userID uint) error {
	var membership models.TeamMember
	if err := fc.DB.Where("team_id = ? AND member_id = ? AND status = ?",
		teamID, userID, models.MemberStatusAccepted).
		First(&membership).Error; err != nil {
		return utils.NewAuthorizationError("You are not a member of this team")
	}
	return nil
}

// store routes the write through the duplicate policy for the feedback
// type.
func (fc *FeedbackController) store(c *fiber.Ctx, feedback *models.Feedback, duplicateMessage string) error {
	if models.PolicyFor(feedback.Type) == models.RejectOnDuplicate {
		return fc.createRejectingDuplicate(c, feedback, duplicateMessage)
	}
	return fc.upsert(c, feedback)
}

// upsert implements UpsertOnDuplicate: the unique index on
// (provider_id, type, target_id) plus ON CONFLICT closes the
// find-before-create race. Only text and emotion are refreshed.
func (fc *FeedbackController) upsert(c *fiber.Ctx, feedback *models.Feedback) error {
	var existing models.Feedback
	updated := fc.DB.Where("provider_id = ? AND type = ? AND target_id = ?",
		feedback.ProviderID, feedback.Type, feedback.TargetID).
		First(&existing).Error == nil

	err := fc.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "provider_id"}, {Name: "type"}, {Name: "target_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"text":       feedback.Text,
			"emotion":    feedback.Emotion,
			"updated_at": time.Now(),
		}),
	}).Create(feedback).Error
	if err != nil {
		fc.Logger.Printf("failed to store %s feedback from user %d: %v", feedback.Type, feedback.ProviderID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to store feedback")
	}

	logrus.WithFields(logrus.Fields{
		"provider": feedback.ProviderID,
		"type":     feedback.Type,
		"target":   feedback.TargetID,
		"emotion":  feedback.Emotion,
		"updated":  updated,
	}).Info("feedback stored")

	if updated {
		return utils.SuccessResponse(c, fiber.StatusOK, feedback, "Feedback updated successfully")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, feedback, "Feedback given successfully")
}

// createRejectingDuplicate implements RejectOnDuplicate: the insert races
// straight into the unique index and a violation comes back as a conflict.
func (fc *FeedbackController) createRejectingDuplicate(c *fiber.Ctx, feedback *models.Feedback, message string) error {
	if err := fc.DB.Create(feedback).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.HandleError(c, utils.NewDuplicateError(message))
		}
		fc.Logger.Printf("failed to store %s feedback from user %d: %v", feedback.Type, feedback.ProviderID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to store feedback")
	}

	logrus.WithFields(logrus.Fields{
		"provider": feedback.ProviderID,
		"type":     feedback.Type,
		"target":   feedback.TargetID,
		"emotion":  feedback.Emotion,
	}).Info("feedback stored")

	return utils.SuccessResponse(c, fiber.StatusCreated, feedback, "Feedback added successfully")
}
