package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"quizapp/backend/models"
	"quizapp/backend/services"
)

type BotController struct {
	Quizzes *services.QuizService
}

func NewBotController(quizzes *services.QuizService) *BotController {
	return &BotController{Quizzes: quizzes}
}

func (bc *BotController) Ask(c *fiber.Ctx) error {
	type AskInput struct {
		QuizID        string `json:"quiz_id"`
		QuestionIndex int    `json:"question_index"`
		Question      string `json:"question"`
	}

	var input AskInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	quizID, err := uuid.Parse(input.QuizID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid quiz ID format",
		})
	}

	user := c.Locals("user").(models.User)

	quiz, err := bc.Quizzes.Get(quizID, user.Email)
	if err != nil {
		if errors.Is(err, services.ErrQuizNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Quiz or question not found",
			})
		}
		log.Printf("quiz lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	if input.QuestionIndex < 0 || input.QuestionIndex >= len(quiz.Questions) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quiz or question not found",
		})
	}

	answer := bc.Quizzes.Explain(c.UserContext(), quiz, input.QuestionIndex, input.Question)

	return c.JSON(fiber.Map{"answer": answer})
}
