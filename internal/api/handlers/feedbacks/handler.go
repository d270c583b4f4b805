package feedbacks

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/UCR-ReservationService/internal/api/handlers"
	"github.com/m04kA/UCR-ReservationService/internal/api/middleware"
	"github.com/m04kA/UCR-ReservationService/internal/service/feedback"
	"github.com/m04kA/UCR-ReservationService/internal/service/feedback/models"
)

const (
	msgInvalidFeedbackID     = "некорректный идентификатор отзыва"
	msgInvalidQueryParams    = "некорректные параметры запроса"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgFeedbackNotFound      = "отзыв не найден"
	msgAccessDenied          = "доступ запрещен"
	msgAlreadyLeft           = "отзыв для этой аудитории и семестра уже оставлен"
	msgNoApprovedReservation = "нет одобренной резервации этой аудитории в этом семестре"
)

type Handler struct {
	service FeedbackService
	logger  Logger
}

func NewHandler(service FeedbackService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleSubmit POST /api/v1/feedbacks
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req SubmitFeedbackRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /feedbacks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Submit(r.Context(), &models.SubmitFeedbackRequest{
		UserID:      userID,
		ClassroomID: req.ClassroomID,
		TermID:      req.TermID,
		Rating:      req.Rating,
		Comment:     req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, feedback.ErrAlreadyLeft):
			h.logger.Warn("POST /feedbacks - Already left: user_id=%d, classroom_id=%d", userID, req.ClassroomID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyLeft)

		case errors.Is(err, feedback.ErrNoApprovedReservation):
			h.logger.Warn("POST /feedbacks - No approved reservation: user_id=%d, classroom_id=%d", userID, req.ClassroomID)
			handlers.RespondForbidden(w, msgNoApprovedReservation)

		case errors.Is(err, feedback.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /feedbacks - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /feedbacks - Submitted: feedback_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleMine GET /api/v1/feedbacks/my
func (h *Handler) HandleMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	result, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /feedbacks/my - Failed: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleList GET /api/v1/feedbacks
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	req, err := parseListQuery(r)
	if err != nil {
		h.logger.Warn("GET /feedbacks - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQueryParams)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, feedback.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /feedbacks - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleEdit PUT /api/v1/feedbacks/{feedbackId}
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	feedbackID, err := strconv.ParseInt(mux.Vars(r)["feedbackId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidFeedbackID)
		return
	}

	var req EditFeedbackRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /feedbacks/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Edit(r.Context(), feedbackID, &models.EditFeedbackRequest{
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, feedback.ErrFeedbackNotFound):
			handlers.RespondNotFound(w, msgFeedbackNotFound)
		case errors.Is(err, feedback.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, feedback.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PUT /feedbacks/{id} - Failed: feedback_id=%d, error=%v", feedbackID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /feedbacks/{id} - Updated: feedback_id=%d, user_id=%d", feedbackID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleMarkRead PATCH /api/v1/feedbacks/{feedbackId}/read
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	feedbackID, err := strconv.ParseInt(mux.Vars(r)["feedbackId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidFeedbackID)
		return
	}

	var req MarkReadRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /feedbacks/{id}/read - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.MarkRead(r.Context(), feedbackID, req.IsRead); err != nil {
		switch {
		case errors.Is(err, feedback.ErrFeedbackNotFound):
			handlers.RespondNotFound(w, msgFeedbackNotFound)
		default:
			h.logger.Error("PATCH /feedbacks/{id}/read - Failed: feedback_id=%d, error=%v", feedbackID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /feedbacks/{id}/read - Updated: feedback_id=%d, is_read=%t", feedbackID, req.IsRead)
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete DELETE /api/v1/feedbacks/{feedbackId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	isAdmin := middleware.IsAdmin(r.Context())

	feedbackID, err := strconv.ParseInt(mux.Vars(r)["feedbackId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidFeedbackID)
		return
	}

	if err := h.service.Delete(r.Context(), feedbackID, userID, isAdmin); err != nil {
		switch {
		case errors.Is(err, feedback.ErrFeedbackNotFound):
			handlers.RespondNotFound(w, msgFeedbackNotFound)
		case errors.Is(err, feedback.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("DELETE /feedbacks/{id} - Failed: feedback_id=%d, error=%v", feedbackID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /feedbacks/{id} - Deleted: feedback_id=%d, user_id=%d", feedbackID, userID)
	w.WriteHeader(http.StatusNoContent)
}
