package main

import (
	"log"

	"learnhub-backend/config"
	"learnhub-backend/middleware"
	"learnhub-backend/models"
	"learnhub-backend/routes"
	"learnhub-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Badge{},
		&models.UserBadge{},
		&models.Course{},
		&models.Lecture{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.CourseSequenceItem{},
		&models.CourseProgress{},
		&models.LectureProgress{},
		&models.QuizScore{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg, logger)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
