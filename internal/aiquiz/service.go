package aiquiz

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/saulo-duarte/lessonquiz-lambda/internal/apperr"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/completion"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/config"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/metrics"
	"github.com/sirupsen/logrus"
)

const minTemperature = 0.1

type Config struct {
	MaxRetries      int
	Temperature     float64
	TemperatureStep float64
	MaxTokens       int
	CallTimeout     time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		Temperature:     0.7,
		TemperatureStep: 0.2,
		MaxTokens:       1000,
		CallTimeout:     60 * time.Second,
	}
}

type Service interface {
	GenerateQuiz(ctx context.Context, lessonID, lessonText string) (*GenerateResult, error)
	GetByLesson(ctx context.Context, lessonID string) (*Quiz, error)
}

type service struct {
	repo   Repository
	client completion.Client
	lock   GenerationLock
	cfg    Config
}

func NewService(repo Repository, client completion.Client, lock GenerationLock, cfg Config) Service {
	if lock == nil {
		lock = NoopLock()
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &service{repo: repo, client: client, lock: lock, cfg: cfg}
}

func (s *service) GenerateQuiz(ctx context.Context, lessonID, lessonText string) (*GenerateResult, error) {
	log := config.WithContext(ctx).WithField("lesson_id", lessonID)

	lessonID = strings.TrimSpace(lessonID)
	if lessonID == "" || strings.TrimSpace(lessonText) == "" {
		return nil, apperr.Validation("lessonId and lessonText are required")
	}

	release, err := s.lock.Acquire(ctx, lessonID)
	switch {
	case err == nil:
		defer release()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	default:
		log.WithError(err).Warn("Generation lock unavailable, continuing without it")
	}

	questions, err := s.generate(ctx, log, BuildPrompt(lessonText))
	if err != nil {
		metrics.QuizzesGenerated.WithLabelValues("failed").Inc()
		return nil, err
	}

	quiz, created, err := s.repo.UpsertByLesson(ctx, lessonID, questions)
	if err != nil {
		log.WithError(err).Error("Failed to store generated quiz")
		metrics.QuizzesGenerated.WithLabelValues("failed").Inc()
		return nil, err
	}

	result := "replaced"
	if created {
		result = "created"
	}
	metrics.QuizzesGenerated.WithLabelValues(result).Inc()
	log.WithField("quiz_id", quiz.ID.String()).WithField("result", result).Info("Quiz generated")

	return &GenerateResult{Quiz: quiz, Created: created}, nil
}

// generate calls the model at most MaxRetries+1 times. Upstream failures
// end the loop at once; unusable output is retried at a lower temperature.
func (s *service) generate(ctx context.Context, log *logrus.Entry, prompt string) ([]GeneratedQuestion, error) {
	var lastErr error
	attempts := 0

	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		attempts++

		raw, err := s.complete(ctx, prompt, s.temperature(attempt))
		if err != nil {
			metrics.CompletionCalls.WithLabelValues("upstream_error").Inc()
			log.WithError(err).Error("Completion call failed")
			return nil, err
		}

		questions, err := ParseQuiz(raw)
		if err == nil {
			metrics.CompletionCalls.WithLabelValues("ok").Inc()
			return questions, nil
		}
		if !retryable(err) {
			return nil, err
		}

		metrics.CompletionCalls.WithLabelValues("invalid_output").Inc()
		log.WithError(err).WithField("attempt", attempt+1).Warn("Model output rejected")
		lastErr = err
	}

	return nil, &GenerationFailedError{Attempts: attempts, LastErr: lastErr}
}

func (s *service) complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	if s.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.CallTimeout)
		defer cancel()
	}
	return s.client.Complete(ctx, completion.Request{
		System:      systemPrompt,
		Prompt:      prompt,
		Temperature: temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
}

func (s *service) temperature(attempt int) float32 {
	if attempt == 0 {
		return float32(s.cfg.Temperature)
	}
	t := s.cfg.Temperature - float64(attempt)*s.cfg.TemperatureStep
	t = math.Max(t, math.Min(minTemperature, s.cfg.Temperature))
	return float32(math.Round(t*100) / 100)
}

func (s *service) GetByLesson(ctx context.Context, lessonID string) (*Quiz, error) {
	lessonID = strings.TrimSpace(lessonID)
	if lessonID == "" {
		return nil, apperr.Validation("lessonId is required")
	}

	quiz, err := s.repo.FindByLesson(ctx, lessonID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to fetch quiz")
		return nil, err
	}
	if quiz == nil {
		return nil, apperr.NotFound("AI Quiz", lessonID)
	}
	return quiz, nil
}
