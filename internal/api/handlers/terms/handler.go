package terms

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/UCR-ReservationService/internal/api/handlers"
	"github.com/m04kA/UCR-ReservationService/internal/service/terms"
	"github.com/m04kA/UCR-ReservationService/internal/service/terms/models"
)

const (
	msgInvalidTermID      = "некорректный идентификатор семестра"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgTermNotFound       = "семестр не найден"
)

type Handler struct {
	service TermsService
	logger  Logger
}

func NewHandler(service TermsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/terms
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTermRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /terms - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, terms.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /terms - Failed: name=%q, error=%v", req.Name, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /terms - Created: term_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/terms
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /terms - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/terms/{termId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	termID, err := strconv.ParseInt(mux.Vars(r)["termId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTermID)
		return
	}

	result, err := h.service.GetByID(r.Context(), termID)
	if err != nil {
		switch {
		case errors.Is(err, terms.ErrTermNotFound):
			handlers.RespondNotFound(w, msgTermNotFound)
		default:
			h.logger.Error("GET /terms/{id} - Failed: term_id=%d, error=%v", termID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PATCH /api/v1/terms/{termId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	termID, err := strconv.ParseInt(mux.Vars(r)["termId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTermID)
		return
	}

	var req models.UpdateTermRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /terms/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), termID, &req)
	if err != nil {
		switch {
		case errors.Is(err, terms.ErrTermNotFound):
			handlers.RespondNotFound(w, msgTermNotFound)
		case errors.Is(err, terms.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PATCH /terms/{id} - Failed: term_id=%d, error=%v", termID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /terms/{id} - Updated: term_id=%d", termID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/terms/{termId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	termID, err := strconv.ParseInt(mux.Vars(r)["termId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTermID)
		return
	}

	if err := h.service.Delete(r.Context(), termID); err != nil {
		switch {
		case errors.Is(err, terms.ErrTermNotFound):
			handlers.RespondNotFound(w, msgTermNotFound)
		default:
			h.logger.Error("DELETE /terms/{id} - Failed: term_id=%d, error=%v", termID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /terms/{id} - Deleted: term_id=%d", termID)
	w.WriteHeader(http.StatusNoContent)
}
