package get_waitlist_queue

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/deskhive/BookingService/internal/api/handlers"
	"github.com/deskhive/BookingService/internal/api/middleware"
	"github.com/deskhive/BookingService/internal/domain"
	"github.com/deskhive/BookingService/internal/service/waitlist"
)

const (
	msgInvalidAreaID = "некорректный ID зоны"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate   = "отсутствует параметр date"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/areas/{areaId}/waitlist?date=YYYY-MM-DD
// Доступно только администраторам
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	areaID, err := strconv.ParseInt(vars["areaId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /areas/{id}/waitlist - Invalid area ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAreaID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /areas/{id}/waitlist - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /areas/{id}/waitlist - Missing date parameter: area_id=%d", areaID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /areas/{id}/waitlist - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetQueue(r.Context(), areaID, date, userID)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrAccessDenied):
			h.logger.Warn("GET /areas/{id}/waitlist - Access denied: area_id=%d, user_id=%s", areaID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, waitlist.ErrInvalidInput):
			h.logger.Warn("GET /areas/{id}/waitlist - Invalid input: area_id=%d", areaID)
			handlers.RespondBadRequest(w, msgInvalidAreaID)

		default:
			h.logger.Error("GET /areas/{id}/waitlist - Failed to get queue: area_id=%d, date=%s, error=%v",
				areaID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
