package create_booking

import (
	"errors"
	"net/http"

	"github.com/deskhive/BookingService/internal/api/handlers"
	"github.com/deskhive/BookingService/internal/api/middleware"
	createBooking "github.com/deskhive/BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные запроса"
	msgDateInPast         = "дата бронирования уже прошла"
	msgDateTooFar         = "дата бронирования за пределами окна бронирования"
	msgObjectNotFound     = "бронируемый объект не найден"
	msgAlreadyQueued      = "вы уже стоите в очереди ожидания на эту дату"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Date in past: user_id=%s, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrDateOutsideWindow):
			h.logger.Warn("POST /bookings - Date outside window: user_id=%s, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrObjectNotFound):
			h.logger.Warn("POST /bookings - Object not found: object_id=%d", req.BookableObjectID)
			handlers.RespondNotFound(w, msgObjectNotFound)

		case errors.Is(err, createBooking.ErrAlreadyQueued):
			h.logger.Warn("POST /bookings - Already queued: user_id=%s, area_id=%d, date=%s",
				userID, req.AreaID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyQueued)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, object_id=%d, error=%v",
				userID, req.BookableObjectID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	// Занятый слот - не отказ: запрос принят в очередь, отсюда 202
	status := http.StatusCreated
	if result.Outcome == createBooking.OutcomeQueued {
		status = http.StatusAccepted
	}

	h.logger.Info("POST /bookings - Request completed: outcome=%s, user_id=%s, object_id=%d",
		result.Outcome, userID, req.BookableObjectID)
	handlers.RespondJSON(w, status, response)
}
