package cancel_booking

import (
	"time"

	"github.com/deskhive/BookingService/internal/domain"
)

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID int64  // ID отменяемого бронирования
	UserID    string // ID запрашивающего пользователя
}

// Response модель ответа. Promoted заполнен, если отмена освободила слот
// для головы очереди ожидания.
type Response struct {
	BookingID   int64
	CancelledAt time.Time
	Promoted    *PromotedPayload
}

// PromotedPayload уведомление о промоушене: какая запись очереди была
// конвертирована и какое бронирование создано вместо отменённого
type PromotedPayload struct {
	EntryID    int64
	UserID     string
	UserEmail  string
	UserName   string
	NewBooking *NewBookingData
}

// NewBookingData данные замещающего бронирования
type NewBookingData struct {
	ID               int64
	BookableObjectID int64
	AreaID           int64
	Date             time.Time
	UserID           string
	CreatedAt        time.Time
}

func promotedPayload(entry *domain.WaitlistEntry, booking *domain.Booking) *PromotedPayload {
	return &PromotedPayload{
		EntryID:   entry.ID,
		UserID:    entry.UserID,
		UserEmail: entry.UserEmail,
		UserName:  entry.UserName,
		NewBooking: &NewBookingData{
			ID:               booking.ID,
			BookableObjectID: booking.BookableObjectID,
			AreaID:           booking.AreaID,
			Date:             booking.Date,
			UserID:           booking.UserID,
			CreatedAt:        booking.CreatedAt,
		},
	}
}
