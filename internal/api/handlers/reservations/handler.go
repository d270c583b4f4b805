package reservations

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/UCR-ReservationService/internal/api/handlers"
	"github.com/m04kA/UCR-ReservationService/internal/api/middleware"
	"github.com/m04kA/UCR-ReservationService/internal/service/reservations"
	"github.com/m04kA/UCR-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный идентификатор резервации"
	msgInvalidQueryParams   = "некорректные параметры запроса"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgReservationNotFound  = "резервация не найдена"
	msgAccessDenied         = "доступ запрещен"
	msgCannotCancel         = "отменить можно только резервацию, ожидающую решения"
	msgAlreadyDecided       = "по резервации уже принято решение"
)

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleGet GET /api/v1/reservations/{reservationId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	isAdmin := middleware.IsAdmin(r.Context())

	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.service.GetByID(r.Context(), reservationID, userID, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)
		case errors.Is(err, reservations.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("GET /reservations/{id} - Failed: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleList GET /api/v1/reservations
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	req, err := parseListQuery(r, userID)
	if err != nil {
		h.logger.Warn("GET /reservations - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQueryParams)
		return
	}

	result, err := h.service.ListByUser(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /reservations - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCancel DELETE /api/v1/reservations/{reservationId}
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	if err := h.service.CancelInstance(r.Context(), reservationID, userID); err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)
		case errors.Is(err, reservations.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, reservations.ErrCannotCancel):
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)
		default:
			h.logger.Error("DELETE /reservations/{id} - Failed: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id} - Cancelled: reservation_id=%d, user_id=%d", reservationID, userID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleReject POST /api/v1/reservations/{reservationId}/reject
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	adminID := middleware.UserID(r.Context())

	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Тело опционально: решение без комментария - обычный случай
	var req RejectReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /reservations/{id}/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Reject(r.Context(), reservationID, &models.RejectReservationRequest{
		AdminID:   adminID,
		AdminNote: req.AdminNote,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)
		case errors.Is(err, reservations.ErrAlreadyDecided):
			handlers.RespondError(w, http.StatusConflict, msgAlreadyDecided)
		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /reservations/{id}/reject - Failed: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/reject - Rejected: reservation_id=%d, admin_id=%d", reservationID, adminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleConflictReport GET /api/v1/reservations/conflict-report
func (h *Handler) HandleConflictReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ConflictReport(r.Context())
	if err != nil {
		h.logger.Error("GET /reservations/conflict-report - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
