package get_waitlist_position

import (
	"context"
	"time"

	"github.com/deskhive/BookingService/internal/service/waitlist/models"
)

type WaitlistService interface {
	GetStatus(ctx context.Context, areaID int64, date time.Time, userID string) (*models.PositionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
