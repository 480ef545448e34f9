package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateOutsideWindow возвращается, когда дата выходит за окно бронирования
	ErrDateOutsideWindow = errors.New("create_booking: date is outside the booking window")

	// ErrObjectNotFound возвращается, когда объект отсутствует в каталоге
	// или деактивирован
	ErrObjectNotFound = errors.New("create_booking: bookable object not found")

	// ErrAlreadyQueued возвращается, когда пользователь уже стоит в очереди
	// на эту зону и дату
	ErrAlreadyQueued = errors.New("create_booking: user already on the waiting list")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
