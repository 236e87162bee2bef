package aiquiz

import (
	"fmt"
	"strings"
)

const QuestionCount = 4

const systemPrompt = "You are an expert quiz generator. You answer with a single JSON object and nothing else."

const promptTemplate = `Create exactly %d multiple-choice questions based on the lesson below.
Each question must have %d options labeled %s.
Specify the correct answer as a single letter (%s).
Return ONLY a valid JSON object in this format:

{
  "questions": [
    {
      "question": "Your question here?",
      "options": {
        "A": "Option A",
        "B": "Option B",
        "C": "Option C",
        "D": "Option D"
      },
      "answer": "A"
    }
  ]
}

Lesson:
"""%s"""
`

// BuildPrompt renders the instruction sent to the model. The lesson text is
// embedded verbatim.
func BuildPrompt(lessonText string) string {
	return fmt.Sprintf(promptTemplate,
		QuestionCount,
		len(OptionLabels),
		strings.Join(OptionLabels, ", "),
		strings.Join(OptionLabels, "/"),
		lessonText,
	)
}
