package leave_waitlist

import "errors"

var (
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrEntryNotFound запись очереди не найдена
	ErrEntryNotFound = errors.New("waitlist entry not found")
	// ErrAccessDenied доступ запрещен
	ErrAccessDenied = errors.New("access denied")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
