package attempt

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/aiquiz"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/apperr"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/config"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/metrics"
)

// QuizFinder loads a quiz with its questions in order, or nil when absent.
type QuizFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*aiquiz.Quiz, error)
}

type Service interface {
	Submit(ctx context.Context, userID uuid.UUID, req SubmitRequest) (*SubmitResult, error)
	ListAttempts(ctx context.Context, userID uuid.UUID) ([]AttemptView, error)
}

type service struct {
	repo    Repository
	quizzes QuizFinder
}

func NewService(repo Repository, quizzes QuizFinder) Service {
	return &service{repo: repo, quizzes: quizzes}
}

func (s *service) Submit(ctx context.Context, userID uuid.UUID, req SubmitRequest) (*SubmitResult, error) {
	log := config.WithContext(ctx)

	rawID := strings.TrimSpace(req.ResolvedQuizID())
	if rawID == "" || req.Answers == nil {
		return nil, apperr.Validation("quizId and answers are required")
	}
	quizID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, apperr.Validation("quizId must be a valid id")
	}

	quiz, err := s.quizzes.FindByID(ctx, quizID)
	if err != nil {
		log.WithError(err).Error("Failed to load quiz for submission")
		return nil, err
	}
	if quiz == nil {
		return nil, apperr.NotFound("AI Quiz", rawID)
	}

	score, given, err := Score(quiz.Questions, req.Answers)
	if err != nil {
		return nil, err
	}

	attempt := &Attempt{
		UserID:         userID,
		QuizID:         quiz.ID,
		Score:          score,
		TotalQuestions: len(quiz.Questions),
		AnswersGiven:   given,
	}
	if err := s.repo.Create(ctx, attempt); err != nil {
		log.WithError(err).Error("Failed to store quiz attempt")
		return nil, err
	}

	metrics.AttemptsSubmitted.Inc()
	log.WithField("quiz_id", quiz.ID.String()).WithField("score", score).Info("Quiz attempt stored")

	return &SubmitResult{Score: score, TotalQuestions: attempt.TotalQuestions}, nil
}

func (s *service) ListAttempts(ctx context.Context, userID uuid.UUID) ([]AttemptView, error) {
	attempts, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list quiz attempts")
		return nil, err
	}
	return attempts, nil
}
