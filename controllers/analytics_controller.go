package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teamnest/analytics"
	"teamnest/models"
	"teamnest/utils"
)

// AnalyticsController assembles the team and user reports. All rollup
// math lives in the analytics package; this controller only fetches rows
// and shapes the response.
type AnalyticsController struct {
	DB       *gorm.DB
	Logger   *log.Logger
	Feedback *FeedbackController
}

func NewAnalyticsController(db *gorm.DB, logger *log.Logger, feedback *FeedbackController) *AnalyticsController {
	return &AnalyticsController{DB: db, Logger: logger, Feedback: feedback}
}

// TaskEmotions is the per-task positive/negative split. Tasks without
// feedback still appear with zero counts.
type TaskEmotions struct {
	TaskID                uint   `json:"taskId"`
	Description           string `json:"description"`
	PositiveFeedbackCount int    `json:"positiveFeedbackCount"`
	NegativeFeedbackCount int    `json:"negativeFeedbackCount"`
}

// TaskStars is the per-task star rollup.
type TaskStars struct {
	TaskID      uint   `json:"taskId"`
	Description string `json:"description"`
	analytics.StarRollup
}

// MaterialEmotions and MaterialStars mirror the task shapes; clients key
// on materialId for these.
type MaterialEmotions struct {
	MaterialID            uint   `json:"materialId"`
	Description           string `json:"description"`
	PositiveFeedbackCount int    `json:"positiveFeedbackCount"`
	NegativeFeedbackCount int    `json:"negativeFeedbackCount"`
}

type MaterialStars struct {
	MaterialID  uint   `json:"materialId"`
	Description string `json:"description"`
	analytics.StarRollup
}

type TeamAnalyticsResponse struct {
	TeamFeedbacks             []analytics.EmotionCount `json:"teamFeedbacks"`
	TaskFeedbacksEmotions     []TaskEmotions           `json:"taskFeedbacksEmotions"`
	TaskStarsCount            []TaskStars              `json:"taskStarsCount"`
	MaterialFeedbacksEmotions []MaterialEmotions       `json:"materialFeedbacksEmotions"`
	MaterialStarsCount        []MaterialStars          `json:"materialStarsCount"`
	TotalTasks                int64                    `json:"totalTasks"`
	TotalMaterials            int64                    `json:"totalMaterials"`
	TotalMembers              int64                    `json:"totalMembers"`
}

type UserAnalyticsResponse struct {
	NumberOfTeams        int64                       `json:"numberOfTeams"`
	TasksAssigned        int64                       `json:"tasksAssigned"`
	TasksSubmitted       int64                       `json:"tasksSubmitted"`
	PendingTasks         int64                       `json:"pendingTasks"`
	UpcomingLiveSessions int                         `json:"upcomingLiveSessions"`
	Accuracy             *float64                    `json:"accuracy"`
	TaskGraph            []analytics.SubmissionPoint `json:"taskGraph"`
}

// GetTeamAnalytics builds the team report: the emotion rollup of team
// feedback plus per-task and per-material breakdowns.
func (ac *AnalyticsController) GetTeamAnalytics(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	teamID := utils.ParseUint(c.Query("id"))

	team, err := teamAccess(ac.DB, teamID, user)
	if err != nil {
		return utils.HandleError(c, err)
	}

	teamFeedbacks, err := ac.Feedback.FeedbackByTarget(models.FeedbackTypeTeam, team.ID)
	if err != nil {
		ac.Logger.Printf("failed to fetch team feedback for team %d: %v", team.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build analytics")
	}

	var tasks []models.Task
	if err := ac.DB.Where("team_id = ?", team.ID).Order("created_at ASC").Find(&tasks).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build analytics")
	}
	var materials []models.Material
	if err := ac.DB.Where("team_id = ?", team.ID).Order("created_at ASC").Find(&materials).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build analytics")
	}

	taskFeedback, err := ac.feedbackForTargets(models.FeedbackTypeTask, taskIDs(tasks))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build analytics")
	}
	materialFeedback, err := ac.feedbackForTargets(models.FeedbackTypeMaterial, materialIDs(materials))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build analytics")
	}

	byTask := analytics.GroupByTarget(taskFeedback, analytics.TaskKey)
	byMaterial := analytics.GroupByTarget(materialFeedback, analytics.MaterialKey)

	resp := TeamAnalyticsResponse{
		TeamFeedbacks:             analytics.EmotionRollup(teamFeedbacks),
		TaskFeedbacksEmotions:     make([]TaskEmotions, 0, len(tasks)),
		TaskStarsCount:            make([]TaskStars, 0, len(tasks)),
		MaterialFeedbacksEmotions: make([]MaterialEmotions, 0, len(materials)),
		MaterialStarsCount:        make([]MaterialStars, 0, len(materials)),
		TotalTasks:                int64(len(tasks)),
		TotalMaterials:            int64(len(materials)),
	}

	// Every task and material appears in the report even with no feedback.
	for _, task := range tasks {
		fbs := byTask[task.ID]
		positive, negative := analytics.PositiveNegative(fbs)
		resp.TaskFeedbacksEmotions = append(resp.TaskFeedbacksEmotions, TaskEmotions{
			TaskID:                task.ID,
			Description:           task.Description,
			PositiveFeedbackCount: positive,
			NegativeFeedbackCount: negative,
		})
		resp.TaskStarsCount = append(resp.TaskStarsCount, TaskStars{
			TaskID:      task.ID,
			Description: task.Description,
			StarRollup:  analytics.Stars(fbs),
		})
	}
	for _, material := range materials {
		fbs := byMaterial[material.ID]
		positive, negative := analytics.PositiveNegative(fbs)
		resp.MaterialFeedbacksEmotions = append(resp.MaterialFeedbacksEmotions, MaterialEmotions{
			MaterialID:            material.ID,
			Description:           material.Name,
			PositiveFeedbackCount: positive,
			NegativeFeedbackCount: negative,
		})
		resp.MaterialStarsCount = append(resp.MaterialStarsCount, MaterialStars{
			MaterialID:  material.ID,
			Description: material.Name,
			StarRollup:  analytics.Stars(fbs),
		})
	}

	if err := ac.DB.Model(&models.TeamMember{}).
		Where("team_id = ? AND role = ? AND status = ?", team.ID, models.RoleMember, models.MemberStatusAccepted).
		Count(&resp.TotalMembers).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build analytics")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, resp, "Team analytics fetched successfully")
}

// GetUserAnalytics builds the caller's personal report: workload counts,
// the submission time series, and overall accuracy.
func (ac *AnalyticsController) GetUserAnalytics(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var teamIDs []uint
	if err := ac.DB.Model(&models.TeamMember{}).
		Where("member_id = ? AND status = ?", user.ID, models.MemberStatusAccepted).
		Pluck("team_id", &teamIDs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build analytics")
	}

	resp := UserAnalyticsResponse{
		NumberOfTeams: int64(len(teamIDs)),
		TaskGraph:     make([]analytics.SubmissionPoint, 0),
	}

	if len(teamIDs) > 0 {
		if err := ac.DB.Model(&models.Task{}).
			Where("team_id IN ?", teamIDs).
			Count(&resp.TasksAssigned).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build analytics")
		}

		var startTimes []time.Time
		if err := ac.DB.Model(&models.LiveSession{}).
			Where("team_id IN ?", teamIDs).
			Pluck("start_time", &startTimes).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build analytics")
		}
		resp.UpcomingLiveSessions = analytics.UpcomingSessions(startTimes, time.Now())

		// Assigned vs submitted per membership; the pending total never
		// lets one team's surplus cancel another's deficit.
		var loads []analytics.TeamTaskLoad
		err := ac.DB.Raw(`
			SELECT t.team_id, COUNT(t.id) AS assigned, COUNT(s.id) AS submitted
			FROM tasks t
			LEFT JOIN submissions s
			       ON s.task_id = t.id AND s.owner_id = ? AND s.deleted_at IS NULL
			WHERE t.team_id IN ? AND t.deleted_at IS NULL
			GROUP BY t.team_id
		`, user.ID, teamIDs).Scan(&loads).Error
		if err != nil {
			ac.Logger.Printf("failed to compute task loads for user %d: %v", user.ID, err)
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build analytics")
		}
		resp.PendingTasks = analytics.PendingTasks(loads)
	}

	if err := ac.DB.Model(&models.Submission{}).
		Where("owner_id = ?", user.ID).
		Count(&resp.TasksSubmitted).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build analytics")
	}

	var points []analytics.SubmissionPoint
	err := ac.DB.Model(&models.Submission{}).
		Select("marks, full_marks, created_at").
		Where("owner_id = ?", user.ID).
		Order("created_at ASC").
		Scan(&points).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build analytics")
	}
	if points != nil {
		resp.TaskGraph = points
	}
	resp.Accuracy = analytics.Accuracy(resp.TaskGraph)

	return utils.SuccessResponse(c, fiber.StatusOK, resp, "User analytics fetched successfully")
}

func (ac *AnalyticsController) feedbackForTargets(feedbackType string, ids []uint) ([]models.Feedback, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var feedbacks []models.Feedback
	err := ac.DB.Where("type = ? AND target_id IN ?", feedbackType, ids).Find(&feedbacks).Error
	return feedbacks, err
}

func taskIDs(tasks []models.Task) []uint {
	ids := make([]uint, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

func materialIDs(materials []models.Material) []uint {
	ids := make([]uint, 0, len(materials))
	for _, m := range materials {
		ids = append(ids, m.ID)
	}
	return ids
}
