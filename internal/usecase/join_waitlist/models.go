package join_waitlist

import "time"

// Request запрос на постановку в очередь ожидания
type Request struct {
	AreaID    int64
	Date      time.Time
	UserID    string
	UserEmail string
}

// Response результат постановки в очередь
type Response struct {
	EntryID   int64
	AreaID    int64
	Date      time.Time
	Position  int
	UserName  string
	CreatedAt time.Time
}
