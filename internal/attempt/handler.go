package attempt

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/apperr"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/auth"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

type submitResponse struct {
	Message string `json:"message"`
	SubmitResult
}

type listResponse struct {
	Attempts []AttemptView `json:"attempts"`
}

func currentUser(r *http.Request) (uuid.UUID, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, ok := currentUser(r)
	if !ok {
		log.Warn("User not authenticated")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SubmitRequest
	if err := config.DecodeJSON(r, &req); err != nil {
		log.WithError(err).Warn("Invalid submit request")
		config.Error(w, http.StatusBadRequest, apperr.PublicMessage(err, "invalid request body"))
		return
	}

	result, err := h.service.Submit(r.Context(), userID, req)
	if err != nil {
		status := apperr.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.WithError(err).Error("Failed to submit quiz attempt")
		}
		config.Error(w, status, apperr.PublicMessage(err, "Failed to submit quiz attempt"))
		return
	}

	config.JSON(w, http.StatusOK, submitResponse{Message: "Quiz submitted successfully", SubmitResult: *result})
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, ok := currentUser(r)
	if !ok {
		log.Warn("User not authenticated")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	attempts, err := h.service.ListAttempts(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("Failed to list quiz attempts")
		config.Error(w, http.StatusInternalServerError, "Failed to fetch quiz attempts")
		return
	}

	config.JSON(w, http.StatusOK, listResponse{Attempts: attempts})
}
