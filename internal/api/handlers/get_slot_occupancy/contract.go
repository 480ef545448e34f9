package get_slot_occupancy

import (
	"context"

	"github.com/deskhive/BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetSlotOccupancy(ctx context.Context, req *models.GetSlotOccupancyRequest) (*models.SlotOccupancyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
