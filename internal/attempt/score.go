package attempt

import (
	"github.com/google/uuid"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/aiquiz"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/apperr"
)

// Score grades answers against the quiz's current questions.
//
// An answer carrying questionId must name a question of this quiz, or the
// whole submission is rejected. An answer carrying only questionIndex that
// falls outside the quiz is kept with a null questionId and earns nothing.
// Every matching answer scores, including repeats for one question.
func Score(questions []aiquiz.Question, answers []SubmittedAnswer) (int, []AnswerGiven, error) {
	byID := make(map[uuid.UUID]int, len(questions))
	for i, q := range questions {
		byID[q.ID] = i
	}

	score := 0
	given := make([]AnswerGiven, 0, len(answers))

	for i, a := range answers {
		idx := -1
		switch {
		case a.QuestionID != nil:
			pos, ok := byID[*a.QuestionID]
			if !ok {
				return 0, nil, apperr.Validation("answers[%d].questionId does not belong to this quiz", i)
			}
			idx = pos
		case a.QuestionIndex != nil && *a.QuestionIndex >= 0 && *a.QuestionIndex < len(questions):
			idx = *a.QuestionIndex
		}

		entry := AnswerGiven{SelectedOption: a.SelectedOption}
		if idx >= 0 {
			q := questions[idx]
			id := q.ID
			entry.QuestionID = &id
			if a.SelectedOption == q.Answer {
				score++
			}
		}
		given = append(given, entry)
	}
	return score, given, nil
}
