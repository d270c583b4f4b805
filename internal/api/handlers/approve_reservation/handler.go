package approve_reservation

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/UCR-ReservationService/internal/api/handlers"
	"github.com/m04kA/UCR-ReservationService/internal/api/middleware"
	approveReservation "github.com/m04kA/UCR-ReservationService/internal/usecase/approve_reservation"
)

const (
	msgInvalidReservationID   = "некорректный идентификатор резервации"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgReservationNotFound    = "резервация не найдена"
	msgAlreadyDecided         = "по резервации уже принято решение"
)

type Handler struct {
	useCase ApproveReservationUseCase
	logger  Logger
}

func NewHandler(useCase ApproveReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID := middleware.UserID(r.Context())

	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Тело опционально: решение без комментария - обычный случай
	var req ApproveReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /reservations/{id}/approve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &approveReservation.Request{
		ReservationID: reservationID,
		AdminID:       adminID,
		AdminNote:     req.AdminNote,
	})
	if err != nil {
		switch {
		case errors.Is(err, approveReservation.ErrCannotApprove):
			// Ответ содержит причину отказа
			h.logger.Warn("POST /reservations/{id}/approve - Cannot approve: reservation_id=%d, reason=%s",
				reservationID, result.RefusalReason)
			handlers.RespondJSON(w, http.StatusConflict, FromUseCaseResponse(result))

		case errors.Is(err, approveReservation.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/approve - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, approveReservation.ErrAlreadyDecided):
			h.logger.Warn("POST /reservations/{id}/approve - Already decided: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyDecided)

		case errors.Is(err, approveReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations/{id}/approve - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /reservations/{id}/approve - Failed: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/approve - Approved: reservation_id=%d, admin_id=%d", reservationID, adminID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
