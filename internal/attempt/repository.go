package attempt

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/apperr"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, a *Attempt) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]AttemptView, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Attempt) error {
	return apperr.Persistence("create attempt", r.db.WithContext(ctx).Create(a).Error)
}

type attemptRow struct {
	ID             uuid.UUID
	QuizID         uuid.UUID
	Score          int
	TotalQuestions int
	AnswersGiven   datatypes.JSONSlice[AnswerGiven]
	AttemptedAt    time.Time
	LessonID       *string
	QuestionCount  *int
}

const listColumns = `a.id, a.quiz_id, a.score, a.total_questions, a.answers_given, a.attempted_at,
	q.lesson_id AS lesson_id,
	(SELECT COUNT(*) FROM ai_quiz_questions qq WHERE qq.quiz_id = a.quiz_id) AS question_count`

// ListByUser returns the user's attempts newest first, each joined with the
// current state of its quiz.
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]AttemptView, error) {
	var rows []attemptRow
	err := r.db.WithContext(ctx).
		Table("ai_quiz_attempts AS a").
		Select(listColumns).
		Joins("LEFT JOIN ai_quizzes q ON q.id = a.quiz_id").
		Where("a.user_id = ?", userID).
		Order("a.attempted_at DESC, a.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Persistence("list attempts", err)
	}

	views := make([]AttemptView, 0, len(rows))
	for _, row := range rows {
		view := AttemptView{
			ID:             row.ID,
			Score:          row.Score,
			TotalQuestions: row.TotalQuestions,
			AnswersGiven:   []AnswerGiven(row.AnswersGiven),
			AttemptedAt:    row.AttemptedAt,
		}
		if row.LessonID != nil {
			view.Quiz = &QuizSummary{ID: row.QuizID, LessonID: *row.LessonID}
			if row.QuestionCount != nil {
				view.Quiz.QuestionCount = *row.QuestionCount
			}
		}
		if view.AnswersGiven == nil {
			view.AnswersGiven = []AnswerGiven{}
		}
		views = append(views, view)
	}
	return views, nil
}
