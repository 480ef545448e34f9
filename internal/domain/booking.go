package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	// StatusActive действующее бронирование, занимает слот
	StatusActive BookingStatus = "active"
	// StatusCancelled отменённое бронирование. Терминальный статус:
	// запись никогда не возвращается в active, вместо этого создается новая.
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a reservation of one bookable object for one calendar date
type Booking struct {
	ID               int64
	BookableObjectID int64
	// AreaID денормализован из объекта каталога, чтобы матчить
	// очередь ожидания без похода во внешний сервис
	AreaID int64
	Date   time.Time // только дата, время обнулено
	UserID string
	UserEmail string

	// Denormalized data for history and the day view
	UserName string

	Status      BookingStatus
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// SlotKey identifies the (bookable object, date) pair a booking occupies
type SlotKey struct {
	BookableObjectID int64
	Date             time.Time
}

// Slot returns the slot this booking occupies
func (b *Booking) Slot() SlotKey {
	return SlotKey{BookableObjectID: b.BookableObjectID, Date: b.Date}
}
