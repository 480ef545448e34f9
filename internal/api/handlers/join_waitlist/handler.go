package join_waitlist

import (
	"errors"
	"net/http"

	"github.com/deskhive/BookingService/internal/api/handlers"
	"github.com/deskhive/BookingService/internal/api/middleware"
	joinWaitlist "github.com/deskhive/BookingService/internal/usecase/join_waitlist"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные запроса"
	msgDateInPast         = "дата уже прошла"
	msgDateTooFar         = "дата за пределами окна бронирования"
	msgAreaNotFound       = "зона не найдена"
	msgAlreadyQueued      = "вы уже стоите в очереди ожидания на эту дату"
)

type Handler struct {
	useCase JoinWaitlistUseCase
	logger  Logger
}

func NewHandler(useCase JoinWaitlistUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /waitlist - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req JoinWaitlistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /waitlist - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /waitlist - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, joinWaitlist.ErrInvalidInput):
			h.logger.Warn("POST /waitlist - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, joinWaitlist.ErrInvalidDate):
			h.logger.Warn("POST /waitlist - Date in past: user_id=%s, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, joinWaitlist.ErrDateOutsideWindow):
			h.logger.Warn("POST /waitlist - Date outside window: user_id=%s, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, joinWaitlist.ErrAreaNotFound):
			h.logger.Warn("POST /waitlist - Area not found: area_id=%d", req.AreaID)
			handlers.RespondNotFound(w, msgAreaNotFound)

		case errors.Is(err, joinWaitlist.ErrAlreadyQueued):
			h.logger.Warn("POST /waitlist - Already queued: user_id=%s, area_id=%d, date=%s",
				userID, req.AreaID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyQueued)

		default:
			h.logger.Error("POST /waitlist - Failed to join waitlist: user_id=%s, area_id=%d, error=%v",
				userID, req.AreaID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waitlist - User queued: user_id=%s, area_id=%d, position=%d",
		userID, req.AreaID, result.Position)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
