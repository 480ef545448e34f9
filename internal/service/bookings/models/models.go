package models

import (
	"time"

	"github.com/deskhive/BookingService/internal/domain"
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID   string     `json:"userId"`
	CallerID string     `json:"-"`
	From     *time.Time `json:"from,omitempty"` // Начало периода (опционально)
	To       *time.Time `json:"to,omitempty"`   // Конец периода (опционально)
}

// GetDayScheduleRequest запрос на расписание зоны на день
type GetDayScheduleRequest struct {
	AreaID int64     `json:"areaId"`
	Date   time.Time `json:"date"`
}

// GetSlotOccupancyRequest запрос занятости объекта на дату
type GetSlotOccupancyRequest struct {
	BookableObjectID int64     `json:"bookableObjectId"`
	Date             time.Time `json:"date"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               int64      `json:"id"`
	BookableObjectID int64      `json:"bookableObjectId"`
	AreaID           int64      `json:"areaId"`
	Date             string     `json:"date"` // "2026-09-14"
	UserID           string     `json:"userId"`
	UserEmail        string     `json:"userEmail"`
	UserName         string     `json:"userName"`
	Status           string     `json:"status"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// ScheduleSlot одна ячейка расписания: объект и его занятость на дату
type ScheduleSlot struct {
	BookableObjectID int64   `json:"bookableObjectId"`
	ObjectName       string  `json:"objectName"`
	Occupied         bool    `json:"occupied"`
	BookingID        *int64  `json:"bookingId,omitempty"`
	OccupantID       *string `json:"occupantId,omitempty"`
	OccupantName     *string `json:"occupantName,omitempty"`
}

// SlotOccupancyResponse занятость одного объекта на дату
type SlotOccupancyResponse struct {
	BookableObjectID int64  `json:"bookableObjectId"`
	ObjectName       string `json:"objectName"`
	Date             string `json:"date"`
	Occupied         bool   `json:"occupied"`
}

// DayScheduleResponse расписание зоны на день
type DayScheduleResponse struct {
	AreaID int64          `json:"areaId"`
	Date   string         `json:"date"`
	Slots  []ScheduleSlot `json:"slots"`
}

// FromDomainBooking конвертирует domain.Booking в response модель
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:               b.ID,
		BookableObjectID: b.BookableObjectID,
		AreaID:           b.AreaID,
		Date:             b.Date.Format(domain.DateFormat),
		UserID:           b.UserID,
		UserEmail:        b.UserEmail,
		UserName:         b.UserName,
		Status:           string(b.Status),
		CancelledAt:      b.CancelledAt,
		CreatedAt:        b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain.Booking в response модель
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		result.Bookings = append(result.Bookings, *FromDomainBooking(b))
	}
	return result
}
