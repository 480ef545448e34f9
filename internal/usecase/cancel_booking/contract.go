package cancel_booking

import (
	"context"
	"time"

	"github.com/deskhive/BookingService/internal/domain"
	"github.com/deskhive/BookingService/internal/integrations/identityservice"
)

// BookingRepository интерфейс журнала бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, cancelledAt time.Time) error
	TryCreate(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// WaitlistRepository интерфейс очередей ожидания
type WaitlistRepository interface {
	PeekHead(ctx context.Context, areaID int64, date time.Time) (*domain.WaitlistEntry, error)
	MarkPromoted(ctx context.Context, id int64, promotedAt time.Time) error
}

// IdentityServiceClient интерфейс клиента для IdentityService
type IdentityServiceClient interface {
	GetUser(ctx context.Context, userID string) (*identityservice.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс бизнес-метрик. Может быть nil, если метрики выключены.
type Metrics interface {
	IncBookingCancelled()
	IncWaitlistPromotion()
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
