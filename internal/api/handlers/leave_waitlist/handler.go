package leave_waitlist

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/deskhive/BookingService/internal/api/handlers"
	"github.com/deskhive/BookingService/internal/api/middleware"
	"github.com/deskhive/BookingService/internal/domain"
	leaveWaitlist "github.com/deskhive/BookingService/internal/usecase/leave_waitlist"
)

const (
	msgInvalidEntryID = "некорректный ID записи очереди"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgNotFound       = "запись очереди не найдена"
	msgForbidden      = "доступ запрещен"
)

// LeaveWaitlistResponse HTTP response model
type LeaveWaitlistResponse struct {
	EntryID   int64  `json:"entryId"`
	AreaID    int64  `json:"areaId"`
	Date      string `json:"date"`
	RemovedAt string `json:"removedAt"`
}

type Handler struct {
	useCase LeaveWaitlistUseCase
	logger  Logger
}

func NewHandler(useCase LeaveWaitlistUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/waitlist/{entryId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entryID, err := strconv.ParseInt(vars["entryId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /waitlist/{id} - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /waitlist/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &leaveWaitlist.Request{
		EntryID: entryID,
		UserID:  userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, leaveWaitlist.ErrInvalidInput):
			h.logger.Warn("DELETE /waitlist/{id} - Invalid input: entry_id=%d, error=%v", entryID, err)
			handlers.RespondBadRequest(w, msgInvalidEntryID)

		case errors.Is(err, leaveWaitlist.ErrEntryNotFound):
			h.logger.Warn("DELETE /waitlist/{id} - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, leaveWaitlist.ErrAccessDenied):
			h.logger.Warn("DELETE /waitlist/{id} - Access denied: entry_id=%d, user_id=%s", entryID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /waitlist/{id} - Failed to leave waitlist: entry_id=%d, error=%v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /waitlist/{id} - Entry removed: entry_id=%d, user_id=%s", entryID, userID)
	handlers.RespondJSON(w, http.StatusOK, &LeaveWaitlistResponse{
		EntryID:   result.EntryID,
		AreaID:    result.AreaID,
		Date:      result.Date.Format(domain.DateFormat),
		RemovedAt: result.RemovedAt.Format(time.RFC3339),
	})
}
