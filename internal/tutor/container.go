package tutor

import (
	"time"

	"github.com/saulo-duarte/lessonquiz-lambda/internal/completion"
)

type TutorContainer struct {
	Handler *Handler
}

func NewTutorContainer(client completion.Client, maxTokens int, timeout time.Duration) *TutorContainer {
	return &TutorContainer{
		Handler: NewHandler(NewService(client, maxTokens, timeout)),
	}
}
