package classrooms

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/UCR-ReservationService/internal/api/handlers"
	"github.com/m04kA/UCR-ReservationService/internal/service/classrooms"
	"github.com/m04kA/UCR-ReservationService/internal/service/classrooms/models"
)

const (
	msgInvalidClassroomID = "некорректный идентификатор аудитории"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgClassroomNotFound  = "аудитория не найдена"
)

type Handler struct {
	service ClassroomsService
	logger  Logger
}

func NewHandler(service ClassroomsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/classrooms
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateClassroomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /classrooms - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, classrooms.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /classrooms - Failed: name=%q, error=%v", req.Name, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /classrooms - Created: classroom_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/classrooms
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("activeOnly") == "true"

	result, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("GET /classrooms - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/classrooms/{classroomId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	classroomID, err := strconv.ParseInt(mux.Vars(r)["classroomId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidClassroomID)
		return
	}

	result, err := h.service.GetByID(r.Context(), classroomID)
	if err != nil {
		switch {
		case errors.Is(err, classrooms.ErrClassroomNotFound):
			handlers.RespondNotFound(w, msgClassroomNotFound)
		default:
			h.logger.Error("GET /classrooms/{id} - Failed: classroom_id=%d, error=%v", classroomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PATCH /api/v1/classrooms/{classroomId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	classroomID, err := strconv.ParseInt(mux.Vars(r)["classroomId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidClassroomID)
		return
	}

	var req models.UpdateClassroomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /classrooms/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), classroomID, &req)
	if err != nil {
		switch {
		case errors.Is(err, classrooms.ErrClassroomNotFound):
			handlers.RespondNotFound(w, msgClassroomNotFound)
		case errors.Is(err, classrooms.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PATCH /classrooms/{id} - Failed: classroom_id=%d, error=%v", classroomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /classrooms/{id} - Updated: classroom_id=%d", classroomID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/classrooms/{classroomId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	classroomID, err := strconv.ParseInt(mux.Vars(r)["classroomId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidClassroomID)
		return
	}

	if err := h.service.Delete(r.Context(), classroomID); err != nil {
		switch {
		case errors.Is(err, classrooms.ErrClassroomNotFound):
			handlers.RespondNotFound(w, msgClassroomNotFound)
		default:
			h.logger.Error("DELETE /classrooms/{id} - Failed: classroom_id=%d, error=%v", classroomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /classrooms/{id} - Deleted: classroom_id=%d", classroomID)
	w.WriteHeader(http.StatusNoContent)
}
