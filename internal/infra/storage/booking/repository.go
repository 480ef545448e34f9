package booking

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

// Имя частичного уникального индекса, охраняющего эксклюзивность слота:
// UNIQUE (bookable_object_id, booking_date) WHERE status = 'active'
const activeSlotConstraint = "ux_bookings_active_slot"

const pgUniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"bookable_object_id",
	"area_id",
	"booking_date",
	"user_id",
	"user_email",
	"user_name",
	"status",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий журнала бронирований.
// Владеет таблицей bookings эксклюзивно: все мутации идут через него.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// TryCreate атомарно занимает слот (объект, дата): один INSERT, без
// предварительного чтения. Эксклюзивность обеспечивает частичный уникальный
// индекс по активным строкам; нарушение конвертируется в ErrSlotTaken.
// Если в контексте передана активная транзакция, выполняется в ней.
func (r *Repository) TryCreate(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"bookable_object_id",
			"area_id",
			"booking_date",
			"user_id",
			"user_email",
			"user_name",
			"status",
		).
		Values(
			booking.BookableObjectID,
			booking.AreaID,
			booking.Date,
			booking.UserID,
			booking.UserEmail,
			booking.UserName,
			domain.StatusActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: TryCreate - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation && pqErr.Constraint == activeSlotConstraint {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: TryCreate - execute insert: %w", ErrExecQuery, err)
	}

	booking.Status = domain.StatusActive
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// Cancel переводит активное бронирование в cancelled (soft delete).
// Условие status = 'active' делает операцию идемпотентно-безопасной:
// повторная отмена не находит строку и возвращает ErrBookingNotFound.
func (r *Repository) Cancel(ctx context.Context, id int64, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", cancelledAt).
		Where(squirrel.Eq{"id": id, "status": domain.StatusActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// GetByID получает бронирование по ID (включая отменённые - журнал ничего не теряет)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// IsOccupied проверяет занятость слота (объект, дата). Больше одной активной
// строки на слот - нарушение инварианта эксклюзивности, оно всплывает наверх
// как ошибка, а не чинится молча.
func (r *Repository) IsOccupied(ctx context.Context, objectID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"bookable_object_id": objectID,
			"booking_date":       date,
			"status":             domain.StatusActive,
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsOccupied - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: IsOccupied - scan count: %w", ErrScanRow, err)
	}

	if count > 1 {
		return true, fmt.Errorf("%w: object=%d date=%s has %d active bookings",
			ErrInvariantViolation, objectID, date.Format(domain.DateFormat), count)
	}

	return count == 1, nil
}

// GetActiveByAreaAndDate получает активные бронирования зоны на дату.
// Проекция для day view: по одному бронированию на занятый объект.
func (r *Repository) GetActiveByAreaAndDate(ctx context.Context, areaID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"area_id":      areaID,
			"booking_date": date,
			"status":       domain.StatusActive,
		}).
		OrderBy("bookable_object_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByAreaAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByAreaAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetUpcomingByUser получает активные бронирования пользователя начиная с даты from
func (r *Repository) GetUpcomingByUser(ctx context.Context, userID string, from time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID, "status": domain.StatusActive}).
		Where(squirrel.GtOrEq{"booking_date": from}).
		OrderBy("booking_date ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUpcomingByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUpcomingByUser - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByUserBetweenDates получает все бронирования пользователя за период,
// включая отменённые. Используется отчётными проекциями.
func (r *Repository) GetByUserBetweenDates(ctx context.Context, userID string, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"booking_date": from}).
		Where(squirrel.LtOrEq{"booking_date": to}).
		OrderBy("booking_date ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserBetweenDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserBetweenDates - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var cancelledAt sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.BookableObjectID,
		&booking.AreaID,
		&booking.Date,
		&booking.UserID,
		&booking.UserEmail,
		&booking.UserName,
		&booking.Status,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
