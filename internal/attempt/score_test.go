package attempt

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/aiquiz"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func twoQuestions() []aiquiz.Question {
	return []aiquiz.Question{
		{ID: uuid.New(), OrderIndex: 0, Text: "Q0", Answer: "B"},
		{ID: uuid.New(), OrderIndex: 1, Text: "Q1", Answer: "A"},
	}
}

func TestScore(t *testing.T) {
	questions := twoQuestions()

	t.Run("ByIndex", func(t *testing.T) {
		score, given, err := Score(questions, []SubmittedAnswer{
			{QuestionIndex: intPtr(0), SelectedOption: "B"},
			{QuestionIndex: intPtr(1), SelectedOption: "C"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, score)
		require.Len(t, given, 2)
		assert.Equal(t, questions[0].ID, *given[0].QuestionID)
		assert.Equal(t, "C", given[1].SelectedOption)
	})

	t.Run("IndexOutOfRangeIsIgnored", func(t *testing.T) {
		score, given, err := Score(questions, []SubmittedAnswer{
			{QuestionIndex: intPtr(0), SelectedOption: "B"},
			{QuestionIndex: intPtr(7), SelectedOption: "A"},
			{QuestionIndex: intPtr(-1), SelectedOption: "A"},
			{SelectedOption: "A"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, score)
		require.Len(t, given, 4)
		assert.Nil(t, given[1].QuestionID)
		assert.Nil(t, given[2].QuestionID)
		assert.Nil(t, given[3].QuestionID)
	})

	t.Run("ByQuestionID", func(t *testing.T) {
		score, _, err := Score(questions, []SubmittedAnswer{
			{QuestionID: &questions[1].ID, SelectedOption: "A"},
			{QuestionID: &questions[0].ID, SelectedOption: "B"},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, score)
	})

	t.Run("QuestionIDWinsOverIndex", func(t *testing.T) {
		score, given, err := Score(questions, []SubmittedAnswer{
			{QuestionIndex: intPtr(0), QuestionID: &questions[1].ID, SelectedOption: "A"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, score)
		assert.Equal(t, questions[1].ID, *given[0].QuestionID)
	})

	t.Run("UnknownQuestionIDRejects", func(t *testing.T) {
		stranger := uuid.New()
		_, _, err := Score(questions, []SubmittedAnswer{
			{QuestionIndex: intPtr(0), SelectedOption: "B"},
			{QuestionID: &stranger, SelectedOption: "A"},
		})

		var ve *apperr.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Contains(t, ve.Message, "answers[1]")
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		score, _, err := Score(questions, []SubmittedAnswer{{QuestionIndex: intPtr(0), SelectedOption: "b"}})
		require.NoError(t, err)
		assert.Zero(t, score)
	})

	t.Run("RepeatedAnswersEachCount", func(t *testing.T) {
		score, given, err := Score(questions, []SubmittedAnswer{
			{QuestionIndex: intPtr(0), SelectedOption: "B"},
			{QuestionIndex: intPtr(0), SelectedOption: "B"},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, score)
		assert.Len(t, given, 2)
	})
}
