package attempt

import (
	"time"

	"github.com/google/uuid"
)

// SubmittedAnswer addresses a question by id or, for older clients, by its
// zero-based position. The id wins when both are present.
type SubmittedAnswer struct {
	QuestionIndex  *int       `json:"questionIndex"`
	QuestionID     *uuid.UUID `json:"questionId"`
	SelectedOption string     `json:"selectedOption"`
}

type SubmitRequest struct {
	QuizID       string            `json:"quizId" validate:"required_without=LegacyQuizID"`
	LegacyQuizID string            `json:"aiQuizId"`
	Answers      []SubmittedAnswer `json:"answers" validate:"required"`
}

// ResolvedQuizID returns quizId, falling back to the aiQuizId alias.
func (r SubmitRequest) ResolvedQuizID() string {
	if r.QuizID != "" {
		return r.QuizID
	}
	return r.LegacyQuizID
}

type SubmitResult struct {
	Score          int `json:"score"`
	TotalQuestions int `json:"totalQuestions"`
}

type QuizSummary struct {
	ID            uuid.UUID `json:"id"`
	LessonID      string    `json:"lessonId"`
	QuestionCount int       `json:"questionCount"`
}

// AttemptView is a stored attempt joined with the quiz it belongs to. Quiz
// is nil when the quiz no longer exists.
type AttemptView struct {
	ID             uuid.UUID     `json:"id"`
	Quiz           *QuizSummary  `json:"quiz"`
	Score          int           `json:"score"`
	TotalQuestions int           `json:"totalQuestions"`
	AnswersGiven   []AnswerGiven `json:"answersGiven"`
	AttemptedAt    time.Time     `json:"attemptedAt"`
}
