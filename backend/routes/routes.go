package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizapp/backend/config"
	"quizapp/backend/controllers"
	"quizapp/backend/middleware"
	"quizapp/backend/services"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, generator *services.Generator, verifier services.GoogleVerifier) {
	authService := services.NewAuthService(db, cfg, verifier)
	quizService := services.NewQuizService(db, generator)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Quiz App Backend"})
	})

	// Auth routes
	authController := controllers.NewAuthController(authService)
	app.Post("/api/v1/auth/login", authController.Login)
	app.Post("/api/v1/auth/google", authController.Google)
	app.Post("/api/v1/auth/signup", authController.Signup)

	// Middleware
	authMiddleware := middleware.Protected(db, cfg)

	// Quiz routes
	quizController := controllers.NewQuizController(quizService)
	quiz := app.Group("/api/v1/quiz", authMiddleware)
	quiz.Post("/generate", quizController.Generate)
	quiz.Post("/submit", quizController.Submit)

	// Bot routes
	botController := controllers.NewBotController(quizService)
	bot := app.Group("/api/v1/bot", authMiddleware)
	bot.Post("/ask", botController.Ask)
}
