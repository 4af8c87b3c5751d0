package controller

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teamnest/models"
	"teamnest/utils"
)

type SubmissionController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewSubmissionController(db *gorm.DB, logger *log.Logger) *SubmissionController {
	return &SubmissionController{DB: db, Logger: logger}
}

type SubmitTaskRequest struct {
	Description string `json:"description" validate:"required,max=500"`
	Document    string `json:"document" validate:"required,url"`
}

type MarkSubmissionRequest struct {
	Marks int `json:"marks" validate:"min=0"`
}

// SubmissionWithOwner joins the submitting member's public profile onto
// the submission row.
type SubmissionWithOwner struct {
	ID          uint      `json:"id"`
	OwnerID     uint      `json:"owner_id"`
	TaskID      uint      `json:"task_id"`
	Description string    `json:"description"`
	Document    string    `json:"document"`
	FullMarks   int       `json:"full_marks"`
	Marks       string    `json:"marks"`
	CreatedAt   time.Time `json:"created_at"`
	FullName    string    `json:"full_name"`
	Username    string    `json:"username"`
	AvatarURL   string    `json:"avatar_url"`
}

// SubmitTask records a member's answer. The task's full marks are
// snapshotted onto the submission; a second submission is rejected by the
// unique index on (owner_id, task_id).
func (sc *SubmissionController) SubmitTask(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	taskID := utils.ParseUint(c.Query("taskId"))

	var task models.Task
	if err := sc.DB.First(&task, taskID).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Task"))
	}

	var membership models.TeamMember
	if err := sc.DB.Where("team_id = ? AND member_id = ? AND status = ?",
		task.TeamID, user.ID, models.MemberStatusAccepted).
		First(&membership).Error; err != nil {
		return utils.HandleError(c, utils.NewAuthorizationError("You are not a member of this team"))
	}

	var req SubmitTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, err)
	}

	submission := models.Submission{
		OwnerID:     user.ID,
		TaskID:      task.ID,
		Description: req.Description,
		Document:    req.Document,
		FullMarks:   task.FullMarks,
		Marks:       models.MarksUnmarked,
	}

	if err := sc.DB.Create(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.HandleError(c, utils.NewDuplicateError("You have already submitted this task"))
		}
		sc.Logger.Printf("failed to store submission for task %d: %v", task.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to submit task")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, submission, "Task submitted successfully")
}

// ViewSubmission returns the caller's own submission for a task.
func (sc *SubmissionController) ViewSubmission(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	taskID := utils.ParseUint(c.Query("taskId"))

	var submission models.Submission
	if err := sc.DB.Where("task_id = ? AND owner_id = ?", taskID, user.ID).
		First(&submission).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Submission"))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, submission, "Submission fetched successfully")
}

// ViewAllSubmissions lists every submission for a task with the owning
// member's profile. Leader only.
func (sc *SubmissionController) ViewAllSubmissions(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	taskID := utils.ParseUint(c.Query("taskId"))

	task, err := sc.taskForLeader(taskID, user)
	if err != nil {
		return utils.HandleError(c, err)
	}

	var submissions []SubmissionWithOwner
	err = sc.DB.Raw(`
		SELECT s.id, s.owner_id, s.task_id, s.description, s.document,
		       s.full_marks, s.marks, s.created_at,
		       u.full_name, u.username, u.avatar_url
		FROM submissions s
		JOIN users u ON u.id = s.owner_id
		WHERE s.task_id = ? AND s.deleted_at IS NULL
		ORDER BY s.created_at ASC
	`, task.ID).Scan(&submissions).Error
	if err != nil {
		sc.Logger.Printf("failed to list submissions for task %d: %v", task.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch submissions")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, submissions, "Submissions fetched successfully")
}

// MarkSubmission grades a submission. Marks cannot exceed the submission's
// snapshotted full marks.
func (sc *SubmissionController) MarkSubmission(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	submissionID := utils.ParseUint(c.Query("submissionId"))

	var submission models.Submission
	if err := sc.DB.First(&submission, submissionID).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Submission"))
	}

	if _, err := sc.taskForLeader(submission.TaskID, user); err != nil {
		return utils.HandleError(c, err)
	}

	var req MarkSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, err)
	}
	if req.Marks > submission.FullMarks {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Marks cannot exceed full marks")
	}

	if err := sc.DB.Model(&submission).Update("marks", strconv.Itoa(req.Marks)).Error; err != nil {
		sc.Logger.Printf("failed to mark submission %d: %v", submission.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to mark submission")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, submission, "Submission marked successfully")
}

// taskForLeader loads a task and verifies the caller leads its team.
func (sc *SubmissionController) taskForLeader(taskID uint, user *models.User) (*models.Task, error) {
	var task models.Task
	if err := sc.DB.First(&task, taskID).Error; err != nil {
		return nil, utils.NewNotFoundError("Task")
	}
	var team models.Team
	if err := sc.DB.First(&team, task.TeamID).Error; err != nil {
		return nil, utils.NewNotFoundError("Team")
	}
	if team.LeaderID != user.ID {
		return nil, utils.NewAuthorizationError("Only the team leader can view submissions")
	}
	return &task, nil
}
