package create_booking

import (
	"context"
	"time"

	"github.com/deskhive/BookingService/internal/domain"
	"github.com/deskhive/BookingService/internal/integrations/catalogservice"
	"github.com/deskhive/BookingService/internal/integrations/identityservice"
)

// BookingRepository интерфейс журнала бронирований
type BookingRepository interface {
	TryCreate(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// WaitlistRepository интерфейс очередей ожидания
type WaitlistRepository interface {
	Enqueue(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetBookableObject(ctx context.Context, objectID int64) (*catalogservice.BookableObject, error)
}

// IdentityServiceClient интерфейс клиента для IdentityService
type IdentityServiceClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID string) (*identityservice.User, error)
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

// Metrics интерфейс бизнес-метрик аллокации. Может быть nil, если метрики выключены.
type Metrics interface {
	IncBookingAllocated()
	IncBookingQueued()
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
