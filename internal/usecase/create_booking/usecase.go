package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/deskhive/BookingService/internal/domain"
	catalogClient "github.com/deskhive/BookingService/internal/integrations/catalogservice"
	bookingRepo "github.com/deskhive/BookingService/internal/infra/storage/booking"
	waitlistRepo "github.com/deskhive/BookingService/internal/infra/storage/waitlist"
)

// UseCase use case создания бронирования.
// Исход Validated -> Allocated | Queued | Rejected: занятый слот - не отказ,
// а перевод запроса в очередь ожидания зоны.
type UseCase struct {
	bookingRepo    BookingRepository
	waitlistRepo   WaitlistRepository
	catalogClient  CatalogServiceClient
	identityClient IdentityServiceClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	windowDays     int
	logger         Logger
	metrics        Metrics
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepository BookingRepository,
	waitlistRepository WaitlistRepository,
	catalogClient CatalogServiceClient,
	identityClient IdentityServiceClient,
	txManager TransactionManager,
	windowDays int,
	logger Logger,
	metrics Metrics,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepository,
		waitlistRepo:   waitlistRepository,
		catalogClient:  catalogClient,
		identityClient: identityClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		windowDays:     windowDays,
		logger:         logger,
		metrics:        metrics,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, object=%d, area=%d, date=%s",
		req.UserID, req.BookableObjectID, req.AreaID, req.Date.Format(domain.DateFormat))

	// 1. Структурная валидация
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Окно бронирования относительно логической даты
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now, uc.windowDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Объект должен существовать в каталоге и быть активным
	object, err := uc.catalogClient.GetBookableObject(ctx, req.BookableObjectID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrObjectNotFound) {
			uc.logger.Warn("CreateBooking: object id=%d not found", req.BookableObjectID)
			return nil, ErrObjectNotFound
		}
		uc.logger.Error("CreateBooking: failed to get object id=%d: %v", req.BookableObjectID, err)
		return nil, fmt.Errorf("%w: failed to get bookable object: %w", ErrInternal, err)
	}
	if !object.IsActive {
		uc.logger.Warn("CreateBooking: object id=%d is inactive", req.BookableObjectID)
		return nil, ErrObjectNotFound
	}

	// Зона берётся из каталога, а не из запроса: подделанный areaID
	// не должен расщепить очередь ожидания
	if object.AreaID != req.AreaID {
		uc.logger.Warn("CreateBooking: request area=%d does not match catalog area=%d for object=%d",
			req.AreaID, object.AreaID, req.BookableObjectID)
	}
	areaID := object.AreaID

	// 4. Отображаемое имя из профиля, с graceful degradation до email
	userName := displayName("", req.UserEmail)
	if user, err := uc.identityClient.GetUserWithGracefulDegradation(ctx, req.UserID); err == nil {
		userName = displayName(user.FullName(), req.UserEmail)
	}

	date := domain.DateOnly(req.Date)
	var result *Response

	// 5. Аллокация в сериализуемой транзакции: конфликт вставки переводит
	// запрос в очередь, постановка в очередь и назначение позиции происходят
	// в той же транзакционной границе
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking := &domain.Booking{
			BookableObjectID: req.BookableObjectID,
			AreaID:           areaID,
			Date:             date,
			UserID:           req.UserID,
			UserEmail:        req.UserEmail,
			UserName:         userName,
		}

		created, err := uc.bookingRepo.TryCreate(txCtx, booking)
		if err == nil {
			result = &Response{Outcome: OutcomeAllocated, Booking: fromDomainBooking(created)}
			return nil
		}

		if !errors.Is(err, bookingRepo.ErrSlotTaken) {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		// Слот занят - хвост очереди зоны
		entry := &domain.WaitlistEntry{
			AreaID:    areaID,
			Date:      date,
			UserID:    req.UserID,
			UserEmail: req.UserEmail,
			UserName:  userName,
		}

		enqueued, err := uc.waitlistRepo.Enqueue(txCtx, entry)
		if err != nil {
			if errors.Is(err, waitlistRepo.ErrDuplicateEntry) {
				return ErrAlreadyQueued
			}
			uc.logger.Error("CreateBooking: failed to enqueue: %v", err)
			return fmt.Errorf("%w: failed to enqueue: %w", ErrInternal, err)
		}

		result = &Response{Outcome: OutcomeQueued, WaitlistEntry: fromDomainEntry(enqueued)}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrAlreadyQueued) {
			uc.logger.Warn("CreateBooking: user=%s already queued for area=%d date=%s",
				req.UserID, areaID, date.Format(domain.DateFormat))
		}
		return nil, err
	}

	switch result.Outcome {
	case OutcomeAllocated:
		uc.logger.Info("CreateBooking: allocated booking id=%d for user=%s", result.Booking.ID, req.UserID)
		if uc.metrics != nil {
			uc.metrics.IncBookingAllocated()
		}
	case OutcomeQueued:
		uc.logger.Info("CreateBooking: queued user=%s at position %d for area=%d date=%s",
			req.UserID, result.WaitlistEntry.Position, areaID, date.Format(domain.DateFormat))
		if uc.metrics != nil {
			uc.metrics.IncBookingQueued()
		}
	}

	return result, nil
}
