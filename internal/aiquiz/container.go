package aiquiz

import (
	"github.com/saulo-duarte/lessonquiz-lambda/internal/completion"
	"gorm.io/gorm"
)

type AIQuizContainer struct {
	Repo    Repository
	Service Service
	Handler *Handler
}

func NewAIQuizContainer(db *gorm.DB, client completion.Client, lock GenerationLock, cfg Config) *AIQuizContainer {
	repo := NewRepository(db)
	service := NewService(repo, client, lock, cfg)
	handler := NewHandler(service)

	return &AIQuizContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
