package get_slot_occupancy

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
	msgInvalidObjectID = "некорректный ID объекта"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate     = "отсутствует параметр date"
	msgObjectNotFound  = "объект бронирования не найден"
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

// Handle GET /api/v1/objects/{objectId}/occupancy?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	objectID, err := strconv.ParseInt(vars["objectId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /objects/{id}/occupancy - Invalid object ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidObjectID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /objects/{id}/occupancy - Missing date parameter: object_id=%d", objectID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /objects/{id}/occupancy - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetSlotOccupancy(r.Context(), &models.GetSlotOccupancyRequest{
		BookableObjectID: objectID,
		Date:             date,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrObjectNotFound):
			h.logger.Warn("GET /objects/{id}/occupancy - Object not found: object_id=%d", objectID)
			handlers.RespondNotFound(w, msgObjectNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /objects/{id}/occupancy - Invalid input: object_id=%d", objectID)
			handlers.RespondBadRequest(w, msgInvalidObjectID)

		default:
			h.logger.Error("GET /objects/{id}/occupancy - Failed to get occupancy: object_id=%d, date=%s, error=%v",
				objectID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
