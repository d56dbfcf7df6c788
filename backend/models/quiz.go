package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Question is embedded in a quiz as JSON, never stored on its own.
// CorrectAnswer indexes into the four Options.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// Quiz is one generated attempt owned by a single user. Questions are
// fixed at creation; Answers and Score are written together on submit
// and overwritten on resubmit.
type Quiz struct {
	ID        uuid.UUID                          `gorm:"type:uuid;primaryKey" json:"quiz_id"`
	UserEmail string                             `gorm:"index;not null" json:"-"`
	Level     string                             `json:"level"`
	Questions datatypes.JSONSlice[Question]      `json:"questions"`
	Answers   datatypes.JSONType[map[string]int] `json:"answers"`
	Score     *int                               `json:"score"`
	CreatedAt time.Time                          `json:"-"`
	UpdatedAt time.Time                          `json:"-"`
}
