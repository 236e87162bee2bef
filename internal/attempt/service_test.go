package attempt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/aiquiz"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&aiquiz.Quiz{}, &aiquiz.Question{}, &Attempt{}))
	return db
}

func seedQuiz(t *testing.T, db *gorm.DB, lessonID string, answers ...string) *aiquiz.Quiz {
	t.Helper()
	quiz := &aiquiz.Quiz{LessonID: lessonID}
	for i, a := range answers {
		quiz.Questions = append(quiz.Questions, aiquiz.Question{
			OrderIndex: i,
			Text:       "question",
			Options:    datatypes.NewJSONType(aiquiz.Options{A: "a", B: "b", C: "c", D: "d"}),
			Answer:     a,
		})
	}
	require.NoError(t, db.Create(quiz).Error)
	return quiz
}

type fixture struct {
	db   *gorm.DB
	repo Repository
	svc  Service
}

func newFixture(t *testing.T) fixture {
	db := newTestDB(t)
	repo := NewRepository(db)
	return fixture{db: db, repo: repo, svc: NewService(repo, aiquiz.NewRepository(db))}
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	user := uuid.New()

	t.Run("ScoresAndStoresOneAttempt", func(t *testing.T) {
		f := newFixture(t)
		quiz := seedQuiz(t, f.db, "lesson-1", "B", "A")

		result, err := f.svc.Submit(ctx, user, SubmitRequest{
			QuizID: quiz.ID.String(),
			Answers: []SubmittedAnswer{
				{QuestionIndex: intPtr(0), SelectedOption: "B"},
				{QuestionIndex: intPtr(1), SelectedOption: "C"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, &SubmitResult{Score: 1, TotalQuestions: 2}, result)

		var stored []Attempt
		require.NoError(t, f.db.Find(&stored).Error)
		require.Len(t, stored, 1)
		assert.Equal(t, user, stored[0].UserID)
		assert.Equal(t, quiz.ID, stored[0].QuizID)
		assert.False(t, stored[0].AttemptedAt.IsZero())
		require.Len(t, stored[0].AnswersGiven, 2)
		assert.Equal(t, quiz.Questions[0].ID, *stored[0].AnswersGiven[0].QuestionID)
	})

	t.Run("LegacyQuizIDAlias", func(t *testing.T) {
		f := newFixture(t)
		quiz := seedQuiz(t, f.db, "lesson-2", "D")

		result, err := f.svc.Submit(ctx, user, SubmitRequest{
			LegacyQuizID: quiz.ID.String(),
			Answers:      []SubmittedAnswer{{QuestionIndex: intPtr(0), SelectedOption: "D"}},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Score)
	})

	t.Run("OutOfRangeIndexStoredAsNull", func(t *testing.T) {
		f := newFixture(t)
		quiz := seedQuiz(t, f.db, "lesson-3", "A", "B")

		result, err := f.svc.Submit(ctx, user, SubmitRequest{
			QuizID:  quiz.ID.String(),
			Answers: []SubmittedAnswer{{QuestionIndex: intPtr(9), SelectedOption: "A"}},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, result.Score)
		assert.Equal(t, 2, result.TotalQuestions)

		var stored Attempt
		require.NoError(t, f.db.First(&stored).Error)
		require.Len(t, stored.AnswersGiven, 1)
		assert.Nil(t, stored.AnswersGiven[0].QuestionID)
	})

	t.Run("UnknownQuestionIDStoresNothing", func(t *testing.T) {
		f := newFixture(t)
		quiz := seedQuiz(t, f.db, "lesson-4", "A")
		stranger := uuid.New()

		_, err := f.svc.Submit(ctx, user, SubmitRequest{
			QuizID:  quiz.ID.String(),
			Answers: []SubmittedAnswer{{QuestionID: &stranger, SelectedOption: "A"}},
		})
		var ve *apperr.ValidationError
		require.True(t, errors.As(err, &ve))

		var count int64
		require.NoError(t, f.db.Model(&Attempt{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("MissingQuiz", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Submit(ctx, user, SubmitRequest{QuizID: uuid.NewString(), Answers: []SubmittedAnswer{}})
		var nf *apperr.NotFoundError
		assert.True(t, errors.As(err, &nf))
	})

	t.Run("InvalidInput", func(t *testing.T) {
		f := newFixture(t)

		for _, req := range []SubmitRequest{
			{Answers: []SubmittedAnswer{}},
			{QuizID: uuid.NewString()},
			{QuizID: "not-a-uuid", Answers: []SubmittedAnswer{}},
		} {
			_, err := f.svc.Submit(ctx, user, req)
			var ve *apperr.ValidationError
			assert.True(t, errors.As(err, &ve), "req=%+v", req)
		}
	})
}

func TestListAttempts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := uuid.New()
	other := uuid.New()
	quiz := seedQuiz(t, f.db, "lesson-h", "A", "B", "C")

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, at := range []time.Time{base, base.Add(time.Hour), base.Add(2 * time.Hour)} {
		require.NoError(t, f.repo.Create(ctx, &Attempt{
			UserID:         user,
			QuizID:         quiz.ID,
			Score:          i,
			TotalQuestions: 3,
			AnswersGiven:   []AnswerGiven{{SelectedOption: "A"}},
			AttemptedAt:    at,
		}))
	}
	require.NoError(t, f.repo.Create(ctx, &Attempt{UserID: other, QuizID: quiz.ID, AttemptedAt: base.Add(5 * time.Hour)}))

	views, err := f.svc.ListAttempts(ctx, user)
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, []int{2, 1, 0}, []int{views[0].Score, views[1].Score, views[2].Score}, "newest first")
	assert.True(t, views[0].AttemptedAt.Equal(base.Add(2*time.Hour)))
	require.NotNil(t, views[0].Quiz)
	assert.Equal(t, "lesson-h", views[0].Quiz.LessonID)
	assert.Equal(t, 3, views[0].Quiz.QuestionCount)

	again, err := f.svc.ListAttempts(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, len(views), len(again))

	none, err := f.svc.ListAttempts(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}
