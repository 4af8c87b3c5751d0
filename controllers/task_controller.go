package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teamnest/models"
	"teamnest/utils"
)

type TaskController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewTaskController(db *gorm.DB, logger *log.Logger) *TaskController {
	return &TaskController{DB: db, Logger: logger}
}

type CreateTaskRequest struct {
	Description string `json:"description" validate:"required,max=500"`
	Document    string `json:"document" validate:"required,url"`
	Deadline    string `json:"deadline" validate:"required"`
	FullMarks   int    `json:"fullmarks" validate:"omitempty,min=1"`
}

// TaskWithMarks is a task row annotated with the caller's own submission
// marks. Marks is null when the caller has not submitted yet.
type TaskWithMarks struct {
	ID          uint      `json:"id"`
	OwnerID     uint      `json:"owner_id"`
	TeamID      uint      `json:"team_id"`
	Description string    `json:"description"`
	Document    string    `json:"document"`
	Deadline    time.Time `json:"deadline"`
	FullMarks   int       `json:"fullmarks"`
	CreatedAt   time.Time `json:"created_at"`
	Marks       *string   `json:"marks"`
}

// teamAccess allows the team leader or an accepted member through.
func teamAccess(db *gorm.DB, teamID uint, user *models.User) (*models.Team, error) {
	var team models.Team
	if err := db.First(&team, teamID).Error; err != nil {
		return nil, utils.NewNotFoundError("Team")
	}
	if team.LeaderID == user.ID {
		return &team, nil
	}
	var membership models.TeamMember
	if err := db.Where("team_id = ? AND member_id = ? AND status = ?",
		teamID, user.ID, models.MemberStatusAccepted).
		First(&membership).Error; err != nil {
		return nil, utils.NewAuthorizationError("You are not a member of this team")
	}
	return &team, nil
}

// CreateTask assigns a new task to the team. Runs behind RequireTeamLeader.
func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	team := c.Locals("team").(*models.Team)

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, err)
	}

	deadline, err := parseDateTime(req.Deadline)
	if err != nil {
		return utils.HandleError(c, utils.NewValidationError("deadline"))
	}

	task := models.Task{
		OwnerID:     user.ID,
		TeamID:      team.ID,
		Description: req.Description,
		Document:    req.Document,
		Deadline:    deadline,
		FullMarks:   100,
	}
	if req.FullMarks > 0 {
		task.FullMarks = req.FullMarks
	}

	if err := tc.DB.Create(&task).Error; err != nil {
		tc.Logger.Printf("failed to create task for team %d: %v", team.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create task")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, task, "Task created successfully")
}

// DeleteTask removes a task with its submissions and feedback. Only the
// leader of the owning team may delete.
func (tc *TaskController) DeleteTask(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	taskID := utils.ParseUint(c.Query("taskId"))

	var task models.Task
	if err := tc.DB.First(&task, taskID).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Task"))
	}

	var team models.Team
	if err := tc.DB.First(&team, task.TeamID).Error; err != nil {
		return utils.HandleError(c, utils.NewNotFoundError("Team"))
	}
	if team.LeaderID != user.ID {
		return utils.HandleError(c, utils.NewAuthorizationError("Only the team leader can delete tasks"))
	}

	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		// Hard delete submissions and feedback so their unique indexes do
		// not keep tombstones around.
		if err := tx.Unscoped().Where("task_id = ?", task.ID).Delete(&models.Submission{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("for_task_id = ?", task.ID).Delete(&models.Feedback{}).Error; err != nil {
			return err
		}
		return tx.Delete(&task).Error
	})
	if err != nil {
		tc.Logger.Printf("failed to delete task %d: %v", task.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete task")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, nil, "Task deleted successfully")
}

// GetAllTasks lists the team's tasks with the caller's own submission
// marks joined in.
func (tc *TaskController) GetAllTasks(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	teamID := utils.ParseUint(c.Query("id"))

	if _, err := teamAccess(tc.DB, teamID, user); err != nil {
		return utils.HandleError(c, err)
	}

	var tasks []TaskWithMarks
	err := tc.DB.Raw(`
		SELECT t.id, t.owner_id, t.team_id, t.description, t.document,
		       t.deadline, t.full_marks, t.created_at, s.marks
		FROM tasks t
		LEFT JOIN submissions s
		       ON s.task_id = t.id AND s.owner_id = ? AND s.deleted_at IS NULL
		WHERE t.team_id = ? AND t.deleted_at IS NULL
		ORDER BY t.created_at DESC
	`, user.ID, teamID).Scan(&tasks).Error
	if err != nil {
		tc.Logger.Printf("failed to list tasks for team %d: %v", teamID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch tasks")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, tasks, "Tasks fetched successfully")
}

// parseDateTime accepts RFC3339 or a bare date.
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
