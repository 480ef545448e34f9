package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда активное бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается, когда слот (объект, дата) уже занят активным
	// бронированием. Для вызывающего кода это не отказ, а сигнал ставить
	// пользователя в очередь ожидания.
	ErrSlotTaken = errors.New("booking.repository: slot already taken")

	// ErrInvariantViolation возвращается при обнаружении двух активных
	// бронирований на один слот. Не чинится на месте: молчаливый ремонт
	// спрятал бы гонку в аллокации.
	ErrInvariantViolation = errors.New("booking.repository: exclusivity invariant violated")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
