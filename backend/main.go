package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"quizapp/backend/config"
	"quizapp/backend/middleware"
	"quizapp/backend/routes"
	"quizapp/backend/services"
	"quizapp/backend/utils"
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

	// Initialize logger
	logger := utils.InitLogger()

	// External clients, constructed once and injected
	generator := services.NewGenerator(services.NewOpenAIModel(cfg.OpenAIAPIKey, cfg.OpenAIModel))
	verifier := services.NewGoogleVerifier(cfg.GoogleClientID)

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg, generator, verifier)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
