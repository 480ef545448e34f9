package domain

// Default configuration values
const (
	// DefaultBookingWindowDays окно бронирования: сегодня .. сегодня + 42 дня (6 недель)
	DefaultBookingWindowDays = 42
)

// Queue constants
const (
	// HeadPosition позиция головы очереди ожидания
	HeadPosition = 1
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
