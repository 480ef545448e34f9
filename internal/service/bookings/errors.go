package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAreaNotFound возвращается, когда зона не найдена в каталоге
	ErrAreaNotFound = errors.New("area not found")

	// ErrObjectNotFound возвращается, когда объект не найден в каталоге
	ErrObjectNotFound = errors.New("bookable object not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvariantViolation возвращается, когда расписание дня противоречиво:
	// на один объект приходится больше одного активного бронирования
	ErrInvariantViolation = errors.New("schedule invariant violation")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
