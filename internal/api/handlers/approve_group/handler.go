package approve_group

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/UCR-ReservationService/internal/api/handlers"
	"github.com/m04kA/UCR-ReservationService/internal/api/middleware"
	approveGroup "github.com/m04kA/UCR-ReservationService/internal/usecase/approve_group"
)

const (
	msgInvalidAnchorID  = "некорректный идентификатор группы"
	msgGroupNotFound    = "группа резерваций не найдена"
	msgNoPendingMembers = "в группе нет резерваций, ожидающих решения"
)

type Handler struct {
	useCase ApproveGroupUseCase
	logger  Logger
}

func NewHandler(useCase ApproveGroupUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservation-groups/{anchorId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID := middleware.UserID(r.Context())

	anchorID, err := strconv.ParseInt(mux.Vars(r)["anchorId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAnchorID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &approveGroup.Request{
		AnchorID: anchorID,
		AdminID:  adminID,
	})
	if err != nil {
		switch {
		case errors.Is(err, approveGroup.ErrCannotApprove):
			// Группа одобряется только целиком: в ответе - даты, не
			// прошедшие валидацию
			h.logger.Warn("POST /reservation-groups/{id}/approve - Cannot approve: anchor_id=%d, holidays=%d, conflicts=%d",
				anchorID, len(result.HolidayDates), len(result.ConflictDates))
			handlers.RespondJSON(w, http.StatusConflict, FromUseCaseResponse(result))

		case errors.Is(err, approveGroup.ErrGroupNotFound):
			h.logger.Warn("POST /reservation-groups/{id}/approve - Not found: anchor_id=%d", anchorID)
			handlers.RespondNotFound(w, msgGroupNotFound)

		case errors.Is(err, approveGroup.ErrNoPendingMembers):
			h.logger.Warn("POST /reservation-groups/{id}/approve - No pending members: anchor_id=%d", anchorID)
			handlers.RespondError(w, http.StatusConflict, msgNoPendingMembers)

		case errors.Is(err, approveGroup.ErrInvalidInput):
			h.logger.Warn("POST /reservation-groups/{id}/approve - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /reservation-groups/{id}/approve - Failed: anchor_id=%d, error=%v", anchorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservation-groups/{id}/approve - Approved: anchor_id=%d, admin_id=%d, count=%d",
		anchorID, adminID, result.Approved)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
