package aiquiz

import (
	"regexp"
	"strings"
)

var (
	leadingFence  = regexp.MustCompile("^```(?:json|JSON)?\\s*")
	trailingFence = regexp.MustCompile("\\s*```$")
)

// ExtractJSON returns the candidate JSON object inside raw model output:
// a leading and trailing code fence are dropped and the span from the first
// '{' to the last '}' is kept. The candidate is not parsed.
func ExtractJSON(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = leadingFence.ReplaceAllString(cleaned, "")
	cleaned = trailingFence.ReplaceAllString(cleaned, "")

	first := strings.IndexByte(cleaned, '{')
	last := strings.LastIndexByte(cleaned, '}')
	if first == -1 || last == -1 || last < first {
		return "", &ExtractionError{Err: ErrNoJSONObject}
	}
	return cleaned[first : last+1], nil
}
