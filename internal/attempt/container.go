package attempt

import "gorm.io/gorm"

type AttemptContainer struct {
	Service Service
	Handler *Handler
}

func NewAttemptContainer(db *gorm.DB, quizzes QuizFinder) *AttemptContainer {
	repo := NewRepository(db)
	service := NewService(repo, quizzes)
	handler := NewHandler(service)

	return &AttemptContainer{
		Service: service,
		Handler: handler,
	}
}
