package aiquiz

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/apperr"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	UpsertByLesson(ctx context.Context, lessonID string, questions []GeneratedQuestion) (*Quiz, bool, error)
	FindByLesson(ctx context.Context, lessonID string) (*Quiz, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Quiz, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// UpsertByLesson stores questions as the quiz of lessonID. The quiz row is
// inserted or touched through the unique lesson index, so concurrent calls
// for one lesson converge on a single row; its old questions are replaced.
// The bool reports whether this call inserted the row.
func (r *repository) UpsertByLesson(ctx context.Context, lessonID string, questions []GeneratedQuestion) (*Quiz, bool, error) {
	var (
		stored  Quiz
		created bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		candidate := Quiz{ID: uuid.New(), LessonID: lessonID, CreatedAt: now, UpdatedAt: now}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "lesson_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"updated_at": now}),
		}).Omit(clause.Associations).Create(&candidate).Error; err != nil {
			return apperr.Persistence("upsert quiz", err)
		}

		if err := tx.Where("lesson_id = ?", lessonID).First(&stored).Error; err != nil {
			return apperr.Persistence("reload quiz", err)
		}
		created = stored.ID == candidate.ID

		if err := tx.Where("quiz_id = ?", stored.ID).Delete(&Question{}).Error; err != nil {
			return apperr.Persistence("delete questions", err)
		}

		rows := make([]Question, len(questions))
		for i, q := range questions {
			rows[i] = Question{
				ID:         uuid.New(),
				QuizID:     stored.ID,
				OrderIndex: i,
				Text:       q.Question,
				Options:    datatypes.NewJSONType(q.Options),
				Answer:     q.Answer,
			}
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return apperr.Persistence("insert questions", err)
			}
		}
		stored.Questions = rows
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &stored, created, nil
}

func (r *repository) FindByLesson(ctx context.Context, lessonID string) (*Quiz, error) {
	return r.findOne(ctx, "lesson_id = ?", lessonID)
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Quiz, error) {
	return r.findOne(ctx, "id = ?", id)
}

// findOne returns (nil, nil) when no quiz matches.
func (r *repository) findOne(ctx context.Context, query string, arg interface{}) (*Quiz, error) {
	var quiz Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		First(&quiz, query, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Persistence("find quiz", err)
	}
	return &quiz, nil
}
