package aiquiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var OptionLabels = []string{"A", "B", "C", "D"}

type Options struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

func (o Options) Get(label string) (string, bool) {
	switch label {
	case "A":
		return o.A, true
	case "B":
		return o.B, true
	case "C":
		return o.C, true
	case "D":
		return o.D, true
	}
	return "", false
}

type Quiz struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID  string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"lessonId"`
	Questions []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Quiz) TableName() string { return "ai_quizzes" }

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

type Question struct {
	ID         uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID     uuid.UUID                   `gorm:"type:uuid;not null;index" json:"-"`
	OrderIndex int                         `gorm:"not null" json:"-"`
	Text       string                      `gorm:"column:question;type:text;not null" json:"question"`
	Options    datatypes.JSONType[Options] `gorm:"not null" json:"options"`
	Answer     string                      `gorm:"type:varchar(1);not null" json:"answer"`
}

func (Question) TableName() string { return "ai_quiz_questions" }

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// GeneratedQuestion is a question that passed schema checks but has not
// been stored yet.
type GeneratedQuestion struct {
	Question string  `json:"question"`
	Options  Options `json:"options"`
	Answer   string  `json:"answer"`
}

type GenerateRequest struct {
	LessonID   string `json:"lessonId" validate:"required,max=64"`
	LessonText string `json:"lessonText" validate:"required"`
}

type GenerateResult struct {
	Quiz    *Quiz
	Created bool
}
