package get_day_schedule

import (
	"context"

	"github.com/deskhive/BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetDaySchedule(ctx context.Context, req *models.GetDayScheduleRequest) (*models.DayScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
