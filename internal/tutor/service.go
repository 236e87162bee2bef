// Package tutor answers free-form study requests with the same completion
// client that writes quizzes.
package tutor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/saulo-duarte/lessonquiz-lambda/internal/apperr"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/completion"
)

const (
	summarizeSystem = "You are an expert tutor who summarizes educational lesson content clearly and concisely."
	askSystem       = "You are a helpful AI tutor."

	NoSummary = "No summary available."
	NoAnswer  = "No answer."
)

type Service interface {
	Summarize(ctx context.Context, lessonContent string) (string, error)
	Ask(ctx context.Context, question string) (string, error)
}

type service struct {
	client    completion.Client
	maxTokens int
	timeout   time.Duration
}

func NewService(client completion.Client, maxTokens int, timeout time.Duration) Service {
	return &service{client: client, maxTokens: maxTokens, timeout: timeout}
}

func (s *service) Summarize(ctx context.Context, lessonContent string) (string, error) {
	if strings.TrimSpace(lessonContent) == "" {
		return "", apperr.Validation("Lesson content is required.")
	}
	return s.complete(ctx, completion.Request{
		System:      summarizeSystem,
		Prompt:      "Please summarize the following lesson:\n\n" + lessonContent,
		Temperature: 0.5,
	}, NoSummary)
}

func (s *service) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", apperr.Validation("Question is required")
	}
	return s.complete(ctx, completion.Request{
		System:      askSystem,
		Prompt:      question,
		Temperature: 0.7,
	}, NoAnswer)
}

// complete maps an empty model reply to fallback. Any other failure is
// returned as is.
func (s *service) complete(ctx context.Context, req completion.Request, fallback string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	req.MaxTokens = s.maxTokens

	text, err := s.client.Complete(ctx, req)
	if err != nil {
		var ue *completion.UpstreamError
		if errors.As(err, &ue) && ue.Kind == completion.KindEmpty {
			return fallback, nil
		}
		return "", err
	}
	if text = strings.TrimSpace(text); text == "" {
		return fallback, nil
	}
	return text, nil
}
