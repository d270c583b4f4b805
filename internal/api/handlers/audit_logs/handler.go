package audit_logs

import (
	"net/http"

	"github.com/m04kA/UCR-ReservationService/internal/api/handlers"
)

const (
	msgInvalidQueryParams = "некорректные параметры запроса"
)

type Handler struct {
	service AuditService
	logger  Logger
}

func NewHandler(service AuditService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/audit-logs
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListQuery(r)
	if err != nil {
		h.logger.Warn("GET /audit-logs - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQueryParams)
		return
	}

	entries, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /audit-logs - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainEntries(entries, total, filter.Page, filter.PageSize))
}
