package create_booking

import (
	"time"

	"github.com/deskhive/BookingService/internal/domain"
	createBooking "github.com/deskhive/BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BookableObjectID int64  `json:"bookableObjectId"`
	AreaID           int64  `json:"areaId"`
	Date             string `json:"date"` // "2026-09-14"
	UserEmail        string `json:"userEmail"`
}

// BookingPayload данные созданного бронирования
type BookingPayload struct {
	ID               int64  `json:"id"`
	BookableObjectID int64  `json:"bookableObjectId"`
	AreaID           int64  `json:"areaId"`
	Date             string `json:"date"`
	UserID           string `json:"userId"`
	UserName         string `json:"userName"`
	Status           string `json:"status"`
	CreatedAt        string `json:"createdAt"`
}

// WaitlistEntryPayload данные записи очереди с назначенной позицией
type WaitlistEntryPayload struct {
	ID        int64  `json:"id"`
	AreaID    int64  `json:"areaId"`
	Date      string `json:"date"`
	UserID    string `json:"userId"`
	Position  int    `json:"position"`
	CreatedAt string `json:"createdAt"`
}

// CreateBookingResponse HTTP response model: ровно одно из полей
// booking / waitlistEntry присутствует, в зависимости от outcome
type CreateBookingResponse struct {
	Outcome       string                `json:"outcome"` // "allocated" | "queued"
	Booking       *BookingPayload       `json:"booking,omitempty"`
	WaitlistEntry *WaitlistEntryPayload `json:"waitlistEntry,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		BookableObjectID: r.BookableObjectID,
		AreaID:           r.AreaID,
		Date:             date,
		UserID:           userID,
		UserEmail:        r.UserEmail,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	result := &CreateBookingResponse{Outcome: string(resp.Outcome)}

	if resp.Booking != nil {
		result.Booking = &BookingPayload{
			ID:               resp.Booking.ID,
			BookableObjectID: resp.Booking.BookableObjectID,
			AreaID:           resp.Booking.AreaID,
			Date:             resp.Booking.Date.Format(domain.DateFormat),
			UserID:           resp.Booking.UserID,
			UserName:         resp.Booking.UserName,
			Status:           resp.Booking.Status,
			CreatedAt:        resp.Booking.CreatedAt.Format(time.RFC3339),
		}
	}

	if resp.WaitlistEntry != nil {
		result.WaitlistEntry = &WaitlistEntryPayload{
			ID:        resp.WaitlistEntry.ID,
			AreaID:    resp.WaitlistEntry.AreaID,
			Date:      resp.WaitlistEntry.Date.Format(domain.DateFormat),
			UserID:    resp.WaitlistEntry.UserID,
			Position:  resp.WaitlistEntry.Position,
			CreatedAt: resp.WaitlistEntry.CreatedAt.Format(time.RFC3339),
		}
	}

	return result
}
