package bookings

import (
	"context"
	"time"

	"github.com/deskhive/BookingService/internal/domain"
	"github.com/deskhive/BookingService/internal/integrations/catalogservice"
	"github.com/deskhive/BookingService/internal/integrations/identityservice"
)

// BookingRepository интерфейс журнала бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetUpcomingByUser(ctx context.Context, userID string, from time.Time) ([]*domain.Booking, error)
	GetByUserBetweenDates(ctx context.Context, userID string, from, to time.Time) ([]*domain.Booking, error)
	GetActiveByAreaAndDate(ctx context.Context, areaID int64, date time.Time) ([]*domain.Booking, error)
	IsOccupied(ctx context.Context, objectID int64, date time.Time) (bool, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetBookableObject(ctx context.Context, objectID int64) (*catalogservice.BookableObject, error)
	GetAreaObjects(ctx context.Context, areaID int64) ([]catalogservice.BookableObject, error)
}

// IdentityServiceClient интерфейс клиента для IdentityService
type IdentityServiceClient interface {
	GetUser(ctx context.Context, userID string) (*identityservice.User, error)
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
	IncInvariantViolation(entity string)
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
