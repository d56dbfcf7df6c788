package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"quizapp/backend/models"
)

type QuizService struct {
	DB        *gorm.DB
	Generator *Generator
}

func NewQuizService(db *gorm.DB, generator *Generator) *QuizService {
	return &QuizService{DB: db, Generator: generator}
}

// Generate asks the model for a fresh question set and persists the
// quiz for the user. Nothing is written when generation fails.
func (s *QuizService) Generate(ctx context.Context, user models.User, level string) (*models.Quiz, error) {
	questions, err := s.Generator.GenerateQuestions(ctx, level)
	if err != nil {
		return nil, err
	}

	quiz := &models.Quiz{
		ID:        uuid.New(),
		UserEmail: user.Email,
		Level:     level,
		Questions: datatypes.NewJSONSlice(questions),
		Answers:   datatypes.NewJSONType(map[string]int{}),
	}
	if err := s.DB.Create(quiz).Error; err != nil {
		return nil, err
	}
	return quiz, nil
}

// Get fetches a quiz scoped to its owner. A quiz the caller does not
// own looks exactly like a quiz that does not exist.
func (s *QuizService) Get(quizID uuid.UUID, userEmail string) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := s.DB.Where("id = ? AND user_email = ?", quizID, userEmail).First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// Submit scores the submitted answers against the owned quiz and
// stores answers and score in a single update. Keys outside the
// question range simply do not count. Resubmitting overwrites the
// previous result.
func (s *QuizService) Submit(quizID uuid.UUID, userEmail string, answers map[int]int) (int, int, error) {
	quiz, err := s.Get(quizID, userEmail)
	if err != nil {
		return 0, 0, err
	}

	questions := quiz.Questions
	score := 0
	stored := make(map[string]int, len(answers))
	for idx, selected := range answers {
		if idx >= 0 && idx < len(questions) && selected == questions[idx].CorrectAnswer {
			score++
		}
		stored[strconv.Itoa(idx)] = selected
	}

	err = s.DB.Model(&models.Quiz{}).Where("id = ?", quizID).Updates(map[string]interface{}{
		"answers": datatypes.NewJSONType(stored),
		"score":   score,
	}).Error
	if err != nil {
		return 0, 0, err
	}

	return score, len(questions), nil
}

// Explain delegates to the generator for the question at the given
// index. The index must already be validated against the quiz.
func (s *QuizService) Explain(ctx context.Context, quiz *models.Quiz, questionIndex int, userQuestion string) string {
	return s.Generator.Explain(ctx, quiz.Questions[questionIndex], questionIndex, userQuestion)
}
