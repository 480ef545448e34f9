package leave_waitlist

import "time"

// Request запрос на выход из очереди ожидания
type Request struct {
	EntryID int64
	UserID  string
}

// Response результат выхода из очереди
type Response struct {
	EntryID   int64
	AreaID    int64
	Date      time.Time
	RemovedAt time.Time
}
