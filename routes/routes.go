package routes

import (
	"log"

	"learnhub-backend/config"
	"learnhub-backend/controllers"
	"learnhub-backend/middleware"
	"learnhub-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *log.Logger) {
	engine := services.NewProgressEngine(db, logger)
	leaderboard := services.NewLeaderboardService(db, engine.Badges)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// Progress routes
	progressController := controllers.NewProgressController(engine)
	myCourses := app.Group("/api/my-courses", authMiddleware)
	myCourses.Get("/:courseId/progress", progressController.GetCourseProgress)
	myCourses.Put("/:courseId/lectures/:lectureId/mark", progressController.UpdateLectureMark)
	myCourses.Post("/:courseId/lectures/:lectureId/notes", progressController.AddNote)
	myCourses.Delete("/:courseId/lectures/:lectureId/notes/:index", progressController.DeleteNote)
	myCourses.Post("/:courseId/quizzes/:quizId/submit", progressController.SubmitQuiz)

	// Courses routes
	coursesController := controllers.NewCoursesController(engine.Catalog, engine.Sequence)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/:id", coursesController.GetCourseDetails)
	courses.Get("/:id/sequence", coursesController.GetSequence)

	// User routes
	userController := controllers.NewUserController(leaderboard)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Get("/api/leaderboard", authMiddleware, userController.GetLeaderboard)

	// Badges routes
	badgesController := controllers.NewBadgesController(engine.Badges)
	app.Get("/api/badges", authMiddleware, badgesController.ListBadges)

	// Admin routes for courses
	adminCourses := app.Group("/api/admin/courses", authMiddleware, adminMiddleware)
	adminCourses.Post("/", coursesController.CreateCourse)
	adminCourses.Post("/:id/lectures", coursesController.AddLecture)
	adminCourses.Post("/:id/quizzes", coursesController.AddQuiz)
	adminCourses.Post("/:id/quizzes/:quizId/questions", coursesController.AddQuestion)
	adminCourses.Put("/:id/sequence", coursesController.SetSequence)

	// Admin routes for badges
	adminBadges := app.Group("/api/admin/badges", authMiddleware, adminMiddleware)
	adminBadges.Post("/", badgesController.CreateBadge)
	adminBadges.Put("/:id", badgesController.UpdateBadge)
	adminBadges.Delete("/:id", badgesController.DeleteBadge)
}
