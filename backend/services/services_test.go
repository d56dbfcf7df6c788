package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"quizapp/backend/config"
	"quizapp/backend/models"
)

// fakeModel scripts the generative-text service for tests and records
// every prompt it receives.
type fakeModel struct {
	response string
	err      error
	prompts  []string
}

func (m *fakeModel) Complete(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

// fakeVerifier scripts the federated-identity provider.
type fakeVerifier struct {
	claims *GoogleClaims
	err    error
}

func (v *fakeVerifier) Verify(ctx context.Context, credential string) (*GoogleClaims, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

var errVerifier = errors.New("token verification failed")

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Quiz{}))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:   "testsecret",
		JWTTTLHours: 24,
	}
}

// sampleQuestions returns n valid questions where every correct
// answer sits at index 1.
func sampleQuestions(n int) []models.Question {
	questions := make([]models.Question, n)
	for i := range questions {
		questions[i] = models.Question{
			Question:      fmt.Sprintf("Question %d?", i),
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: 1,
		}
	}
	return questions
}

func questionsJSON(t *testing.T, questions []models.Question) string {
	t.Helper()

	raw, err := json.Marshal(map[string]interface{}{"questions": questions})
	require.NoError(t, err)
	return string(raw)
}
