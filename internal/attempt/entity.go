package attempt

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AnswerGiven struct {
	QuestionID     *uuid.UUID `json:"questionId"`
	SelectedOption string     `json:"selectedOption"`
}

type Attempt struct {
	ID             uuid.UUID                        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID                        `gorm:"type:uuid;not null;index" json:"userId"`
	QuizID         uuid.UUID                        `gorm:"type:uuid;not null;index" json:"quizId"`
	Score          int                              `gorm:"not null" json:"score"`
	TotalQuestions int                              `gorm:"not null" json:"totalQuestions"`
	AnswersGiven   datatypes.JSONSlice[AnswerGiven] `gorm:"not null" json:"answersGiven"`
	AttemptedAt    time.Time                        `gorm:"not null;index" json:"attemptedAt"`
}

func (Attempt) TableName() string { return "ai_quiz_attempts" }

func (a *Attempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.AttemptedAt.IsZero() {
		a.AttemptedAt = time.Now().UTC()
	}
	return nil
}
