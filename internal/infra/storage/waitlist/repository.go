package waitlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/deskhive/BookingService/internal/domain"
	"github.com/deskhive/BookingService/pkg/dbmetrics"
	"github.com/deskhive/BookingService/pkg/psqlbuilder"
)

// Имя частичного уникального индекса "одно ожидание на пользователя":
// UNIQUE (area_id, booking_date, user_id) WHERE status = 'waiting'
const waitingUserConstraint = "ux_waitlist_waiting_user"

const pgUniqueViolation = "23505"

var entryColumns = []string{
	"id",
	"area_id",
	"booking_date",
	"user_id",
	"user_email",
	"user_name",
	"position",
	"status",
	"promoted_at",
	"removed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий очередей ожидания.
// Владеет таблицей waitlist_entries эксклюзивно.
//
// Все мутации (Enqueue, Remove, MarkPromoted) обязаны выполняться внутри
// сериализуемой транзакции вызывающего: назначение позиции и перенумерация
// хвоста - это read-then-write, и только транзакционная граница
// сериализует конкурентные мутации одной очереди.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория очередей ожидания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Enqueue добавляет пользователя в хвост очереди (зона, дата):
// position = максимум живой очереди + 1. Повторная постановка того же
// пользователя отсекается частичным уникальным индексом.
func (r *Repository) Enqueue(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Хвост очереди под блокировкой, чтобы конкурентные Enqueue не выдали
	// одинаковые позиции. Агрегат с FOR UPDATE в PostgreSQL невозможен,
	// поэтому берём максимум через ORDER BY ... LIMIT 1.
	tailQuery, tailArgs, err := psqlbuilder.Select("position").
		From("waitlist_entries").
		Where(squirrel.Eq{
			"area_id":      entry.AreaID,
			"booking_date": entry.Date,
			"status":       domain.WaitlistStatusWaiting,
		}).
		OrderBy("position DESC").
		Limit(1).
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Enqueue - build tail query: %v", ErrBuildQuery, err)
	}

	var tail int
	err = executor.QueryRowContext(ctx, tailQuery, tailArgs...).Scan(&tail)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("%w: Enqueue - scan tail position: %w", ErrScanRow, err)
	}

	query, args, err := psqlbuilder.Insert("waitlist_entries").
		Columns(
			"area_id",
			"booking_date",
			"user_id",
			"user_email",
			"user_name",
			"position",
			"status",
		).
		Values(
			entry.AreaID,
			entry.Date,
			entry.UserID,
			entry.UserEmail,
			entry.UserName,
			tail+1,
			domain.WaitlistStatusWaiting,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Enqueue - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation && pqErr.Constraint == waitingUserConstraint {
			return nil, ErrDuplicateEntry
		}
		return nil, fmt.Errorf("%w: Enqueue - execute insert: %w", ErrExecQuery, err)
	}

	entry.Position = tail + 1
	entry.Status = domain.WaitlistStatusWaiting
	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return entry, nil
}

// PeekHead возвращает голову очереди (position = 1) под блокировкой FOR UPDATE.
// Блокировка не даёт двум конкурентным промоушенам забрать одну и ту же голову,
// когда в одной зоне освобождаются два объекта одновременно.
func (r *Repository) PeekHead(ctx context.Context, areaID int64, date time.Time) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(entryColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{
			"area_id":      areaID,
			"booking_date": date,
			"status":       domain.WaitlistStatusWaiting,
			"position":     domain.HeadPosition,
		})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: PeekHead - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrQueueEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("%w: PeekHead - scan entry: %w", ErrScanRow, err)
	}

	return entry, nil
}

// Remove переводит живую запись в removed и сдвигает хвост очереди на -1
func (r *Repository) Remove(ctx context.Context, id int64, removedAt time.Time) error {
	return r.finalize(ctx, id, domain.WaitlistStatusRemoved, removedAt)
}

// MarkPromoted переводит живую запись в promoted и сдвигает хвост очереди на -1.
// Вызывается только оркестратором внутри транзакции отмены, вслед за ним в той
// же транзакции создается замещающее бронирование.
func (r *Repository) MarkPromoted(ctx context.Context, id int64, promotedAt time.Time) error {
	return r.finalize(ctx, id, domain.WaitlistStatusPromoted, promotedAt)
}

// finalize общий путь терминальных переходов waiting -> promoted | removed.
// Условие status = 'waiting' гарантирует, что из терминального статуса
// выхода нет и что одна запись не будет финализирована дважды.
func (r *Repository) finalize(ctx context.Context, id int64, status domain.WaitlistStatus, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	timestampColumn := "removed_at"
	if status == domain.WaitlistStatusPromoted {
		timestampColumn = "promoted_at"
	}

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", status).
		Set(timestampColumn, at).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id, "status": domain.WaitlistStatusWaiting}).
		Suffix("RETURNING area_id, booking_date, position").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: finalize - build update query: %v", ErrBuildQuery, err)
	}

	var areaID int64
	var date time.Time
	var position int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&areaID, &date, &position)
	if err == sql.ErrNoRows {
		return ErrEntryNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: finalize - execute update: %w", ErrExecQuery, err)
	}

	// Перенумерация хвоста: все живые записи ниже освободившейся позиции
	// поднимаются на одну, относительный порядок сохраняется
	renumber, renumberArgs, err := psqlbuilder.Update("waitlist_entries").
		Set("position", squirrel.Expr("position - 1")).
		Set("updated_at", at).
		Where(squirrel.Eq{
			"area_id":      areaID,
			"booking_date": date,
			"status":       domain.WaitlistStatusWaiting,
		}).
		Where(squirrel.Gt{"position": position}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: finalize - build renumber query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, renumber, renumberArgs...); err != nil {
		return fmt.Errorf("%w: finalize - execute renumber: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает запись очереди по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan entry: %w", ErrScanRow, err)
	}

	return entry, nil
}

// GetPosition возвращает текущую 1-based позицию пользователя в очереди (зона, дата)
func (r *Repository) GetPosition(ctx context.Context, areaID int64, date time.Time, userID string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("position").
		From("waitlist_entries").
		Where(squirrel.Eq{
			"area_id":      areaID,
			"booking_date": date,
			"user_id":      userID,
			"status":       domain.WaitlistStatusWaiting,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: GetPosition - build select query: %v", ErrBuildQuery, err)
	}

	var position int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&position)
	if err == sql.ErrNoRows {
		return 0, ErrEntryNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: GetPosition - scan position: %w", ErrScanRow, err)
	}

	return position, nil
}

// ListQueue возвращает живую очередь (зона, дата) в порядке позиций и проверяет
// плотность нумерации: позиции обязаны быть ровно 1..N без дыр и дублей
func (r *Repository) ListQueue(ctx context.Context, areaID int64, date time.Time) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{
			"area_id":      areaID,
			"booking_date": date,
			"status":       domain.WaitlistStatusWaiting,
		}).
		OrderBy("position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListQueue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListQueue - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}

	for i, entry := range entries {
		if entry.Position != i+1 {
			return nil, fmt.Errorf("%w: area=%d date=%s expected position %d, got %d",
				ErrInvariantViolation, areaID, date.Format(domain.DateFormat), i+1, entry.Position)
		}
	}

	return entries, nil
}

// GetWaitingByUser возвращает все живые записи пользователя по всем очередям
func (r *Repository) GetWaitingByUser(ctx context.Context, userID string) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{"user_id": userID, "status": domain.WaitlistStatusWaiting}).
		OrderBy("booking_date ASC, area_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWaitingByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWaitingByUser - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*domain.WaitlistEntry, error) {
	var entry domain.WaitlistEntry
	var promotedAt, removedAt sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&entry.ID,
		&entry.AreaID,
		&entry.Date,
		&entry.UserID,
		&entry.UserEmail,
		&entry.UserName,
		&entry.Position,
		&entry.Status,
		&promotedAt,
		&removedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if promotedAt.Valid {
		entry.PromotedAt = &promotedAt.Time
	}
	if removedAt.Valid {
		entry.RemovedAt = &removedAt.Time
	}
	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return &entry, nil
}

// scanEntries сканирует результаты запроса в слайс записей очереди
func scanEntries(rows *sql.Rows) ([]*domain.WaitlistEntry, error) {
	entries := make([]*domain.WaitlistEntry, 0)

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanEntries - scan row: %w", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEntries - rows error: %w", ErrScanRow, err)
	}

	return entries, nil
}
