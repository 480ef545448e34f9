package waitlist

import (
	"context"
	"time"

	"github.com/deskhive/BookingService/internal/domain"
	"github.com/deskhive/BookingService/internal/integrations/identityservice"
)

// WaitlistRepository интерфейс очередей ожидания
type WaitlistRepository interface {
	GetPosition(ctx context.Context, areaID int64, date time.Time, userID string) (int, error)
	ListQueue(ctx context.Context, areaID int64, date time.Time) ([]*domain.WaitlistEntry, error)
	GetWaitingByUser(ctx context.Context, userID string) ([]*domain.WaitlistEntry, error)
}

// IdentityServiceClient интерфейс клиента для IdentityService
type IdentityServiceClient interface {
	GetUser(ctx context.Context, userID string) (*identityservice.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс бизнес-метрик. Может быть nil, если метрики выключены.
type Metrics interface {
	IncInvariantViolation(entity string)
}
