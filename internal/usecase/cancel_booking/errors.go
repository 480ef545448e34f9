package cancel_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда активное бронирование не найдено.
	// Повторная отмена уже отменённого бронирования попадает сюда же -
	// операция идемпотентно-безопасна и не имеет побочных эффектов.
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец
	// бронирования и не администратор
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
