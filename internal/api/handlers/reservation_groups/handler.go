package reservation_groups

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/UCR-ReservationService/internal/api/handlers"
	"github.com/m04kA/UCR-ReservationService/internal/api/middleware"
	"github.com/m04kA/UCR-ReservationService/internal/service/reservations"
)

const (
	msgInvalidAnchorID = "некорректный идентификатор группы"
	msgGroupNotFound   = "группа резерваций не найдена"
	msgAccessDenied    = "доступ запрещен"
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

// HandleList GET /api/v1/reservation-groups
// Пользователь видит свои группы; администратор с ?all=true - группы всех
// пользователей
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	isAdmin := middleware.IsAdmin(r.Context())

	var err error
	var result interface{}
	if isAdmin && r.URL.Query().Get("all") == "true" {
		result, err = h.service.ListAllGroups(r.Context())
	} else {
		result, err = h.service.ListGroups(r.Context(), userID)
	}
	if err != nil {
		h.logger.Error("GET /reservation-groups - Failed: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/reservation-groups/{anchorId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	isAdmin := middleware.IsAdmin(r.Context())

	anchorID, err := strconv.ParseInt(mux.Vars(r)["anchorId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAnchorID)
		return
	}

	result, err := h.service.GetGroup(r.Context(), anchorID, userID, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgGroupNotFound)
		case errors.Is(err, reservations.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("GET /reservation-groups/{id} - Failed: anchor_id=%d, error=%v", anchorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCancel DELETE /api/v1/reservation-groups/{anchorId}
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	anchorID, err := strconv.ParseInt(mux.Vars(r)["anchorId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAnchorID)
		return
	}

	cancelled, err := h.service.CancelGroup(r.Context(), anchorID, userID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgGroupNotFound)
		case errors.Is(err, reservations.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("DELETE /reservation-groups/{id} - Failed: anchor_id=%d, error=%v", anchorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservation-groups/{id} - Cancelled: anchor_id=%d, user_id=%d, count=%d",
		anchorID, userID, cancelled)
	handlers.RespondJSON(w, http.StatusOK, map[string]int{"cancelled": cancelled})
}
