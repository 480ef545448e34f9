package get_day_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/deskhive/BookingService/internal/api/handlers"
	"github.com/deskhive/BookingService/internal/domain"
	"github.com/deskhive/BookingService/internal/service/bookings"
	"github.com/deskhive/BookingService/internal/service/bookings/models"
)

const (
	msgInvalidAreaID = "некорректный ID зоны"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate   = "отсутствует параметр date"
	msgAreaNotFound  = "зона не найдена"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/areas/{areaId}/schedule?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	areaID, err := strconv.ParseInt(vars["areaId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /areas/{id}/schedule - Invalid area ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAreaID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /areas/{id}/schedule - Missing date parameter: area_id=%d", areaID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /areas/{id}/schedule - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetDaySchedule(r.Context(), &models.GetDayScheduleRequest{
		AreaID: areaID,
		Date:   date,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAreaNotFound):
			h.logger.Warn("GET /areas/{id}/schedule - Area not found: area_id=%d", areaID)
			handlers.RespondNotFound(w, msgAreaNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /areas/{id}/schedule - Invalid input: area_id=%d", areaID)
			handlers.RespondBadRequest(w, msgInvalidAreaID)

		default:
			h.logger.Error("GET /areas/{id}/schedule - Failed to get schedule: area_id=%d, date=%s, error=%v",
				areaID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
