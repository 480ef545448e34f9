package waitlist

import "errors"

var (
	// ErrNotQueued возвращается, когда пользователь не стоит в очереди
	ErrNotQueued = errors.New("user is not queued")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvariantViolation возвращается, когда позиции очереди не плотные
	ErrInvariantViolation = errors.New("queue invariant violation")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
