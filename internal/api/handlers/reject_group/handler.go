package reject_group

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/UCR-ReservationService/internal/api/handlers"
	"github.com/m04kA/UCR-ReservationService/internal/api/middleware"
	rejectGroup "github.com/m04kA/UCR-ReservationService/internal/usecase/reject_group"
)

const (
	msgInvalidAnchorID  = "некорректный идентификатор группы"
	msgGroupNotFound    = "группа резерваций не найдена"
	msgNoPendingMembers = "в группе нет резерваций, ожидающих решения"
)

type Handler struct {
	useCase RejectGroupUseCase
	logger  Logger
}

func NewHandler(useCase RejectGroupUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservation-groups/{anchorId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID := middleware.UserID(r.Context())

	anchorID, err := strconv.ParseInt(mux.Vars(r)["anchorId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAnchorID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rejectGroup.Request{
		AnchorID: anchorID,
		AdminID:  adminID,
	})
	if err != nil {
		switch {
		case errors.Is(err, rejectGroup.ErrGroupNotFound):
			h.logger.Warn("POST /reservation-groups/{id}/reject - Not found: anchor_id=%d", anchorID)
			handlers.RespondNotFound(w, msgGroupNotFound)

		case errors.Is(err, rejectGroup.ErrNoPendingMembers):
			h.logger.Warn("POST /reservation-groups/{id}/reject - No pending members: anchor_id=%d", anchorID)
			handlers.RespondError(w, http.StatusConflict, msgNoPendingMembers)

		case errors.Is(err, rejectGroup.ErrInvalidInput):
			h.logger.Warn("POST /reservation-groups/{id}/reject - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /reservation-groups/{id}/reject - Failed: anchor_id=%d, error=%v", anchorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservation-groups/{id}/reject - Rejected: anchor_id=%d, admin_id=%d, count=%d",
		anchorID, adminID, result.Rejected)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
