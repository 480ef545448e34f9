package models

import (
	"time"

	"github.com/deskhive/BookingService/internal/domain"
)

// Response модели

// PositionResponse позиция пользователя в очереди зоны
type PositionResponse struct {
	AreaID   int64  `json:"areaId"`
	Date     string `json:"date"`
	Position int    `json:"position"`
}

// EntryResponse запись очереди ожидания
type EntryResponse struct {
	ID        int64     `json:"id"`
	AreaID    int64     `json:"areaId"`
	Date      string    `json:"date"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

// QueueResponse очередь ожидания зоны на дату
type QueueResponse struct {
	AreaID  int64           `json:"areaId"`
	Date    string          `json:"date"`
	Entries []EntryResponse `json:"entries"`
}

// EntryListResponse список записей очередей пользователя
type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// FromDomainEntry конвертирует domain.WaitlistEntry в response модель
func FromDomainEntry(e *domain.WaitlistEntry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		AreaID:    e.AreaID,
		Date:      e.Date.Format(domain.DateFormat),
		UserID:    e.UserID,
		UserName:  e.UserName,
		Position:  e.Position,
		CreatedAt: e.CreatedAt,
	}
}

// FromDomainEntryList конвертирует список записей в response модель
func FromDomainEntryList(entries []*domain.WaitlistEntry) []EntryResponse {
	result := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, FromDomainEntry(e))
	}
	return result
}
