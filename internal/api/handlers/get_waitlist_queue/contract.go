package get_waitlist_queue

import (
	"context"
	"time"

	"github.com/deskhive/BookingService/internal/service/waitlist/models"
)

type WaitlistService interface {
	GetQueue(ctx context.Context, areaID int64, date time.Time, callerID string) (*models.QueueResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
