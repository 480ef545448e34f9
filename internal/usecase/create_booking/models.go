package create_booking

import (
	"time"

	"github.com/deskhive/BookingService/internal/domain"
)

// Outcome исход запроса на бронирование
type Outcome string

const (
	// OutcomeAllocated слот был свободен, бронирование создано
	OutcomeAllocated Outcome = "allocated"
	// OutcomeQueued слот занят, пользователь поставлен в очередь ожидания
	OutcomeQueued Outcome = "queued"
)

// Request модель запроса на создание бронирования
type Request struct {
	BookableObjectID int64     // ID бронируемого объекта
	AreaID           int64     // ID зоны (проверяется против каталога)
	Date             time.Time // Дата бронирования (без времени)
	UserID           string    // ID пользователя
	UserEmail        string    // Email пользователя
}

// Response модель ответа: ровно одно из полей Booking / WaitlistEntry
// заполнено, в зависимости от Outcome
type Response struct {
	Outcome       Outcome
	Booking       *BookingData
	WaitlistEntry *WaitlistEntryData
}

// BookingData данные созданного бронирования
type BookingData struct {
	ID               int64
	BookableObjectID int64
	AreaID           int64
	Date             time.Time
	UserID           string
	UserEmail        string
	UserName         string
	Status           string
	CreatedAt        time.Time
}

// WaitlistEntryData данные записи очереди ожидания с позицией
type WaitlistEntryData struct {
	ID        int64
	AreaID    int64
	Date      time.Time
	UserID    string
	UserEmail string
	Position  int
	CreatedAt time.Time
}

func fromDomainBooking(b *domain.Booking) *BookingData {
	return &BookingData{
		ID:               b.ID,
		BookableObjectID: b.BookableObjectID,
		AreaID:           b.AreaID,
		Date:             b.Date,
		UserID:           b.UserID,
		UserEmail:        b.UserEmail,
		UserName:         b.UserName,
		Status:           string(b.Status),
		CreatedAt:        b.CreatedAt,
	}
}

func fromDomainEntry(e *domain.WaitlistEntry) *WaitlistEntryData {
	return &WaitlistEntryData{
		ID:        e.ID,
		AreaID:    e.AreaID,
		Date:      e.Date,
		UserID:    e.UserID,
		UserEmail: e.UserEmail,
		Position:  e.Position,
		CreatedAt: e.CreatedAt,
	}
}
