package submit_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/UCR-ReservationService/internal/api/handlers"
	"github.com/m04kA/UCR-ReservationService/internal/api/middleware"
	submitReservation "github.com/m04kA/UCR-ReservationService/internal/usecase/submit_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты (YYYY-MM-DD) или времени (HH:MM)"
	msgClassroomNotFound  = "аудитория не найдена"
	msgClassroomInactive  = "аудитория выведена из эксплуатации"
	msgTermNotFound       = "семестр не найден"
	msgOutsideTerm        = "диапазон дат выходит за рамки семестра"
	msgNoValidDays        = "нет ни одной валидной даты: все дни - праздники или заняты"
)

type Handler struct {
	useCase SubmitReservationUseCase
	logger  Logger
}

func NewHandler(useCase SubmitReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req SubmitReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, submitReservation.ErrNoValidDays):
			// Ответ не пустой: в нем списки пропущенных дат
			h.logger.Warn("POST /reservations - No valid days: user_id=%d, classroom_id=%d", userID, req.ClassroomID)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, FromUseCaseResponse(result))

		case errors.Is(err, submitReservation.ErrClassroomNotFound):
			h.logger.Warn("POST /reservations - Classroom not found: classroom_id=%d", req.ClassroomID)
			handlers.RespondNotFound(w, msgClassroomNotFound)

		case errors.Is(err, submitReservation.ErrClassroomInactive):
			h.logger.Warn("POST /reservations - Classroom inactive: classroom_id=%d", req.ClassroomID)
			handlers.RespondBadRequest(w, msgClassroomInactive)

		case errors.Is(err, submitReservation.ErrTermNotFound):
			h.logger.Warn("POST /reservations - Term not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgTermNotFound)

		case errors.Is(err, submitReservation.ErrOutsideTerm):
			h.logger.Warn("POST /reservations - Range outside term: user_id=%d, classroom_id=%d", userID, req.ClassroomID)
			handlers.RespondBadRequest(w, msgOutsideTerm)

		case errors.Is(err, submitReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /reservations - Failed to submit reservation: user_id=%d, classroom_id=%d, error=%v",
				userID, req.ClassroomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Request submitted: user_id=%d, classroom_id=%d, created=%d",
		userID, req.ClassroomID, len(result.Created))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
