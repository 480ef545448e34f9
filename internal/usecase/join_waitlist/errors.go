package join_waitlist

import "errors"

var (
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidDate невалидная дата
	ErrInvalidDate = errors.New("invalid date")
	// ErrDateOutsideWindow дата вне окна бронирования
	ErrDateOutsideWindow = errors.New("date outside booking window")
	// ErrAreaNotFound зона не найдена
	ErrAreaNotFound = errors.New("area not found")
	// ErrAlreadyQueued пользователь уже в очереди
	ErrAlreadyQueued = errors.New("user already queued")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
