package waitlist

import "errors"

var (
	// ErrEntryNotFound возвращается, когда живая запись очереди не найдена
	ErrEntryNotFound = errors.New("waitlist.repository: entry not found")

	// ErrQueueEmpty возвращается, когда в очереди (зона, дата) нет ожидающих
	ErrQueueEmpty = errors.New("waitlist.repository: queue is empty")

	// ErrDuplicateEntry возвращается, когда пользователь уже стоит в очереди
	// на эту (зону, дату). Одно ожидание на пользователя на слот-день.
	ErrDuplicateEntry = errors.New("waitlist.repository: user already waiting for this area and date")

	// ErrInvariantViolation возвращается при обнаружении дыры или дубля в
	// нумерации живой очереди. Не чинится на месте - это симптом гонки.
	ErrInvariantViolation = errors.New("waitlist.repository: queue position invariant violated")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("waitlist.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("waitlist.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("waitlist.repository: failed to scan row")
)
