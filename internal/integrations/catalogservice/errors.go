package catalogservice

import "errors"

var (
	// ErrObjectNotFound возвращается, когда объект не найден в каталоге
	ErrObjectNotFound = errors.New("catalogservice client: bookable object not found")

	// ErrAreaNotFound возвращается, когда зона не найдена в каталоге
	ErrAreaNotFound = errors.New("catalogservice client: area not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
