package cancel_booking

import (
	"time"

	"github.com/deskhive/BookingService/internal/domain"
	cancelBooking "github.com/deskhive/BookingService/internal/usecase/cancel_booking"
)

// NewBookingPayload замещающее бронирование, созданное при промоушене
type NewBookingPayload struct {
	ID               int64  `json:"id"`
	BookableObjectID int64  `json:"bookableObjectId"`
	AreaID           int64  `json:"areaId"`
	Date             string `json:"date"`
	UserID           string `json:"userId"`
	CreatedAt        string `json:"createdAt"`
}

// PromotedPayload информация о промоушене головы очереди
type PromotedPayload struct {
	EntryID    int64              `json:"entryId"`
	UserID     string             `json:"userId"`
	UserName   string             `json:"userName"`
	NewBooking *NewBookingPayload `json:"newBooking"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	BookingID   int64            `json:"bookingId"`
	CancelledAt string           `json:"cancelledAt"`
	Promoted    *PromotedPayload `json:"promoted,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	result := &CancelBookingResponse{
		BookingID:   resp.BookingID,
		CancelledAt: resp.CancelledAt.Format(time.RFC3339),
	}

	if resp.Promoted != nil {
		result.Promoted = &PromotedPayload{
			EntryID:  resp.Promoted.EntryID,
			UserID:   resp.Promoted.UserID,
			UserName: resp.Promoted.UserName,
			NewBooking: &NewBookingPayload{
				ID:               resp.Promoted.NewBooking.ID,
				BookableObjectID: resp.Promoted.NewBooking.BookableObjectID,
				AreaID:           resp.Promoted.NewBooking.AreaID,
				Date:             resp.Promoted.NewBooking.Date.Format(domain.DateFormat),
				UserID:           resp.Promoted.NewBooking.UserID,
				CreatedAt:        resp.Promoted.NewBooking.CreatedAt.Format(time.RFC3339),
			},
		}
	}

	return result
}
