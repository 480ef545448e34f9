package get_waitlist_position

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
	msgNotQueued     = "вы не стоите в очереди ожидания на эту дату"
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

// Handle GET /api/v1/areas/{areaId}/waitlist/position?date=YYYY-MM-DD
// Возвращает позицию вызывающего в очереди зоны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	areaID, err := strconv.ParseInt(vars["areaId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /areas/{id}/waitlist/position - Invalid area ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAreaID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /areas/{id}/waitlist/position - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /areas/{id}/waitlist/position - Missing date parameter: area_id=%d", areaID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /areas/{id}/waitlist/position - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetStatus(r.Context(), areaID, date, userID)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrNotQueued):
			h.logger.Info("GET /areas/{id}/waitlist/position - Not queued: area_id=%d, user_id=%s", areaID, userID)
			handlers.RespondNotFound(w, msgNotQueued)

		case errors.Is(err, waitlist.ErrInvalidInput):
			h.logger.Warn("GET /areas/{id}/waitlist/position - Invalid input: area_id=%d", areaID)
			handlers.RespondBadRequest(w, msgInvalidAreaID)

		default:
			h.logger.Error("GET /areas/{id}/waitlist/position - Failed to get position: area_id=%d, error=%v",
				areaID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
