package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"teamnest/config"
	controller "teamnest/controllers"
	"teamnest/middleware"
	"teamnest/sentiment"
)

func SetupUserRoutes(app *fiber.App, db *gorm.DB) {
	// User routes group with logging middleware
	users := app.Group("/api/v1/users", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Public endpoints (no authentication required)
	users.Post("/register", controller.Register)
	users.Post("/login", controller.Login)
	users.Post("/refresh-token", controller.RefreshToken)

	// Protected endpoints (require valid JWT)
	protected := users.Group("", middleware.Protected())
	protected.Post("/logout", controller.Logout)
	protected.Get("/current-member", controller.GetCurrentMember)
	protected.Get("/current-leader", controller.GetCurrentLeader)
	protected.Patch("/update-account", controller.UpdateAccount)
	protected.Patch("/update-avatar", controller.UpdateAvatar)
}

func SetupAPIRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize controllers with their respective loggers
	teamController := controller.NewTeamController(db, log.New(os.Stdout, "TEAM: ", log.LstdFlags))
	taskController := controller.NewTaskController(db, log.New(os.Stdout, "TASK: ", log.LstdFlags))
	materialController := controller.NewMaterialController(db, log.New(os.Stdout, "MATERIAL: ", log.LstdFlags))
	submissionController := controller.NewSubmissionController(db, log.New(os.Stdout, "SUBMISSION: ", log.LstdFlags))
	liveSessionController := controller.NewLiveSessionController(db, log.New(os.Stdout, "SESSION: ", log.LstdFlags))
	feedbackController := controller.NewFeedbackController(db,
		log.New(os.Stdout, "FEEDBACK: ", log.LstdFlags),
		sentiment.NewClient(config.AppConfig.SentimentAPIURL))
	analyticsController := controller.NewAnalyticsController(db,
		log.New(os.Stdout, "ANALYTICS: ", log.LstdFlags), feedbackController)

	// API group with versioning and protection
	api := app.Group("/api/v1", middleware.Protected(), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Team routes
	team := api.Group("/teams")
	team.Post("/", teamController.CreateTeam)
	team.Get("/", teamController.GetAllTeams)
	team.Post("/join", teamController.JoinTeam)
	team.Post("/leave", teamController.LeaveTeam)
	team.Get("/my-teams/leader", teamController.GetMyTeamsForLeader)
	team.Get("/my-teams/member", teamController.GetMyTeamsForMember)
	team.Get("/dashboard/leader", teamController.GetDashboardLeader)
	team.Get("/dashboard/member", teamController.GetDashboardMember)
	team.Get("/analytics", analyticsController.GetTeamAnalytics)
	team.Delete("/", teamController.DeleteTeam)
	team.Post("/feedback", middleware.FeedbackRateLimiter(), feedbackController.GiveTeamFeedback)

	// Leader-only team routes
	teamLeader := team.Group("", middleware.RequireTeamLeader())
	teamLeader.Patch("/update", teamController.UpdateTeam)
	teamLeader.Patch("/thumbnail", teamController.UpdateThumbnail)
	teamLeader.Get("/invitations", teamController.ViewInvitations)
	teamLeader.Post("/invitations/accept", teamController.AcceptInvitation)
	teamLeader.Post("/invitations/reject", teamController.RejectInvitation)
	teamLeader.Post("/members/remove", teamController.RemoveMember)
	teamLeader.Post("/members/feedback", middleware.FeedbackRateLimiter(), feedbackController.GiveMemberFeedback)

	// Task routes
	task := api.Group("/tasks")
	task.Post("/", middleware.RequireTeamLeader(), taskController.CreateTask)
	task.Delete("/", taskController.DeleteTask)
	task.Get("/", taskController.GetAllTasks)
	task.Post("/feedback", middleware.FeedbackRateLimiter(), feedbackController.GiveTaskFeedback)

	// Material routes
	material := api.Group("/materials")
	material.Post("/", middleware.RequireTeamLeader(), materialController.UploadMaterial)
	material.Delete("/", materialController.DeleteMaterial)
	material.Get("/", materialController.GetAllMaterials)
	material.Post("/feedback", middleware.FeedbackRateLimiter(), feedbackController.GiveMaterialFeedback)

	// Submission routes
	submission := api.Group("/submissions")
	submission.Post("/", submissionController.SubmitTask)
	submission.Get("/", submissionController.ViewSubmission)
	submission.Get("/all", submissionController.ViewAllSubmissions)
	submission.Patch("/mark", submissionController.MarkSubmission)

	// Live session routes
	session := api.Group("/live-sessions")
	session.Post("/", middleware.RequireTeamLeader(), liveSessionController.CreateLiveSession)
	session.Delete("/", liveSessionController.DeleteLiveSession)
	session.Get("/", liveSessionController.GetAllLiveSessions)

	// Personal analytics
	api.Get("/users/analytics", analyticsController.GetUserAnalytics)

	log.Println("API routes initialized successfully")
}

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Setup health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Setup user routes
	SetupUserRoutes(app, db)

	// Setup API routes
	SetupAPIRoutes(app, db)

	// Setup 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}
