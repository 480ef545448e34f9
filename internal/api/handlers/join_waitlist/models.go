package join_waitlist

import (
	"time"

	"github.com/deskhive/BookingService/internal/domain"
	joinWaitlist "github.com/deskhive/BookingService/internal/usecase/join_waitlist"
)

// JoinWaitlistRequest HTTP request model
type JoinWaitlistRequest struct {
	AreaID    int64  `json:"areaId"`
	Date      string `json:"date"` // "2026-09-14"
	UserEmail string `json:"userEmail"`
}

// JoinWaitlistResponse HTTP response model
type JoinWaitlistResponse struct {
	EntryID   int64  `json:"entryId"`
	AreaID    int64  `json:"areaId"`
	Date      string `json:"date"`
	Position  int    `json:"position"`
	UserName  string `json:"userName"`
	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *JoinWaitlistRequest) ToUseCaseRequest(userID string) (*joinWaitlist.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &joinWaitlist.Request{
		AreaID:    r.AreaID,
		Date:      date,
		UserID:    userID,
		UserEmail: r.UserEmail,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *joinWaitlist.Response) *JoinWaitlistResponse {
	return &JoinWaitlistResponse{
		EntryID:   resp.EntryID,
		AreaID:    resp.AreaID,
		Date:      resp.Date.Format(domain.DateFormat),
		Position:  resp.Position,
		UserName:  resp.UserName,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
