package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"quizapp/backend/models"
	"quizapp/backend/services"
)

type QuizController struct {
	Quizzes *services.QuizService
}

func NewQuizController(quizzes *services.QuizService) *QuizController {
	return &QuizController{Quizzes: quizzes}
}

func (qc *QuizController) Generate(c *fiber.Ctx) error {
	type GenerateInput struct {
		Level string `json:"level"`
	}

	var input GenerateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Level == "" {
		input.Level = "easy"
	}

	user := c.Locals("user").(models.User)

	quiz, err := qc.Quizzes.Generate(c.UserContext(), user, input.Level)
	if err != nil {
		log.Printf("quiz generation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error.",
		})
	}

	return c.JSON(fiber.Map{
		"quiz_id":   quiz.ID.String(),
		"level":     quiz.Level,
		"questions": quiz.Questions,
	})
}

func (qc *QuizController) Submit(c *fiber.Ctx) error {
	type SubmitInput struct {
		QuizID  string         `json:"quiz_id"`
		Answers map[string]int `json:"answers"`
	}

	var input SubmitInput
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

	// Answer slots arrive keyed by stringified index; parse them here
	// so the scoring logic only ever sees integers.
	answers := make(map[int]int, len(input.Answers))
	for key, selected := range input.Answers {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid answer key",
			})
		}
		answers[idx] = selected
	}

	user := c.Locals("user").(models.User)

	score, total, err := qc.Quizzes.Submit(quizID, user.Email, answers)
	if err != nil {
		if errors.Is(err, services.ErrQuizNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Quiz not found",
			})
		}
		log.Printf("quiz submit failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to submit quiz.",
		})
	}

	if input.Answers == nil {
		input.Answers = map[string]int{}
	}

	return c.JSON(fiber.Map{
		"score":   score,
		"total":   total,
		"answers": input.Answers,
	})
}
