package domain

import "time"

// WaitlistStatus represents the state of a waiting list entry
type WaitlistStatus string

const (
	// WaitlistStatusWaiting запись живая и занимает позицию в очереди
	WaitlistStatusWaiting WaitlistStatus = "waiting"
	// WaitlistStatusPromoted запись конвертирована в бронирование. Терминальный статус.
	WaitlistStatusPromoted WaitlistStatus = "promoted"
	// WaitlistStatusRemoved пользователь вышел из очереди. Терминальный статус.
	WaitlistStatusRemoved WaitlistStatus = "removed"
)

// WaitlistEntry represents a user's claim on a position in the queue
// for an (area, date) pair when no bookable object is currently free.
//
// Инвариант очереди: позиции живых записей одной (area, date) - это
// плотный ряд 1..N в порядке createdAt. Любое удаление или промоушен
// сдвигает хвост очереди на -1.
type WaitlistEntry struct {
	ID     int64
	AreaID int64
	Date   time.Time
	UserID string
	UserEmail string
	UserName  string

	// Position 1-based позиция в живой очереди; голова очереди - позиция 1
	Position int

	Status     WaitlistStatus
	PromotedAt *time.Time
	RemovedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWaiting returns true if the entry still holds a queue position
func (e *WaitlistEntry) IsWaiting() bool {
	return e.Status == WaitlistStatusWaiting
}

// IsPromoted returns true if the entry has been converted into a booking
func (e *WaitlistEntry) IsPromoted() bool {
	return e.Status == WaitlistStatusPromoted
}

// IsHead returns true if the entry is first in line
func (e *WaitlistEntry) IsHead() bool {
	return e.Status == WaitlistStatusWaiting && e.Position == HeadPosition
}
