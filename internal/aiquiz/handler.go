package aiquiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/apperr"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

type quizResponse struct {
	Quiz *Quiz `json:"quiz"`
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req GenerateRequest
	if err := config.DecodeJSON(r, &req); err != nil {
		log.WithError(err).Warn("Invalid generate request")
		config.Error(w, http.StatusBadRequest, "lessonId and lessonText are required")
		return
	}

	result, err := h.service.GenerateQuiz(r.Context(), req.LessonID, req.LessonText)
	if err != nil {
		status := apperr.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.WithError(err).Error("Failed to generate quiz")
		}
		config.Error(w, status, apperr.PublicMessage(err, "Failed to generate quiz using AI model"))
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	config.JSON(w, status, quizResponse{Quiz: result.Quiz})
}

func (h *Handler) GetByLesson(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())
	lessonID := chi.URLParam(r, "lessonId")

	quiz, err := h.service.GetByLesson(r.Context(), lessonID)
	if err != nil {
		status := apperr.HTTPStatus(err)
		switch status {
		case http.StatusNotFound:
			config.Error(w, status, "AI Quiz not found for this lesson")
		case http.StatusBadRequest:
			config.Error(w, status, apperr.PublicMessage(err, "invalid lesson id"))
		default:
			log.WithError(err).Error("Failed to fetch quiz")
			config.Error(w, status, "Failed to fetch AI quiz")
		}
		return
	}

	config.JSON(w, http.StatusOK, quizResponse{Quiz: quiz})
}
