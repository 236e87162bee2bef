package aiquiz

import (
	"encoding/json"
	"strings"
)

// ParseQuiz runs the full pipeline on one model output: extraction,
// decoding and schema checks.
func ParseQuiz(raw string) ([]GeneratedQuestion, error) {
	candidate, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var payload any
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return nil, &ParseError{Err: err}
	}
	return ValidateQuiz(payload)
}

// ValidateQuiz checks a decoded payload against the quiz shape and returns
// the typed questions. Values are never coerced: a numeric answer or a
// missing option is a SchemaError.
func ValidateQuiz(payload any) ([]GeneratedQuestion, error) {
	root, ok := payload.(map[string]any)
	if !ok {
		return nil, &SchemaError{Index: -1, Reason: "payload is not an object"}
	}

	rawQuestions, ok := root["questions"]
	if !ok {
		return nil, &SchemaError{Index: -1, Field: "questions", Reason: "missing"}
	}
	items, ok := rawQuestions.([]any)
	if !ok {
		return nil, &SchemaError{Index: -1, Field: "questions", Reason: "not an array"}
	}
	if len(items) == 0 {
		return nil, &SchemaError{Index: -1, Field: "questions", Reason: "empty"}
	}

	out := make([]GeneratedQuestion, 0, len(items))
	for i, item := range items {
		q, err := validateQuestion(i, item)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func validateQuestion(i int, item any) (GeneratedQuestion, error) {
	obj, ok := item.(map[string]any)
	if !ok {
		return GeneratedQuestion{}, &SchemaError{Index: i, Field: "", Reason: "not an object"}
	}

	text, err := nonEmptyString(i, "question", obj["question"])
	if err != nil {
		return GeneratedQuestion{}, err
	}

	rawOptions, ok := obj["options"].(map[string]any)
	if !ok {
		return GeneratedQuestion{}, &SchemaError{Index: i, Field: "options", Reason: "missing or not an object"}
	}
	if len(rawOptions) != len(OptionLabels) {
		return GeneratedQuestion{}, &SchemaError{Index: i, Field: "options", Reason: "must have exactly the keys A, B, C, D"}
	}
	values := make(map[string]string, len(OptionLabels))
	for _, label := range OptionLabels {
		v, err := nonEmptyString(i, "options."+label, rawOptions[label])
		if err != nil {
			return GeneratedQuestion{}, err
		}
		values[label] = v
	}

	answer, ok := obj["answer"].(string)
	if !ok {
		return GeneratedQuestion{}, &SchemaError{Index: i, Field: "answer", Reason: "missing or not a string"}
	}
	if _, ok := values[answer]; !ok {
		return GeneratedQuestion{}, &SchemaError{Index: i, Field: "answer", Reason: "must be one of A, B, C, D"}
	}

	return GeneratedQuestion{
		Question: text,
		Options:  Options{A: values["A"], B: values["B"], C: values["C"], D: values["D"]},
		Answer:   answer,
	}, nil
}

func nonEmptyString(i int, field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &SchemaError{Index: i, Field: field, Reason: "missing or not a string"}
	}
	if strings.TrimSpace(s) == "" {
		return "", &SchemaError{Index: i, Field: field, Reason: "empty"}
	}
	return s, nil
}
