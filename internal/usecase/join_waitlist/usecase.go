package join_waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/deskhive/BookingService/internal/domain"
	catalogClient "github.com/deskhive/BookingService/internal/integrations/catalogservice"
	waitlistRepo "github.com/deskhive/BookingService/internal/infra/storage/waitlist"
)

// UseCase use case явной постановки в очередь ожидания зоны.
// В отличие от создания бронирования, пользователь не пробует занять
// конкретный объект, а сразу встаёт в хвост очереди зоны на дату.
type UseCase struct {
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
	waitlistRepository WaitlistRepository,
	catalogClient CatalogServiceClient,
	identityClient IdentityServiceClient,
	txManager TransactionManager,
	windowDays int,
	logger Logger,
	metrics Metrics,
) *UseCase {
	return &UseCase{
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

// Execute выполняет use case постановки в очередь ожидания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("JoinWaitlist: user=%s, area=%d, date=%s",
		req.UserID, req.AreaID, req.Date.Format(domain.DateFormat))

	// 1. Структурная валидация
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("JoinWaitlist: validation failed: %v", err)
		return nil, err
	}

	// 2. Окно бронирования относительно логической даты
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now, uc.windowDays); err != nil {
		uc.logger.Warn("JoinWaitlist: date validation failed: %v", err)
		return nil, err
	}

	// 3. Зона должна существовать в каталоге
	if _, err := uc.catalogClient.GetAreaObjects(ctx, req.AreaID); err != nil {
		if errors.Is(err, catalogClient.ErrAreaNotFound) {
			uc.logger.Warn("JoinWaitlist: area id=%d not found", req.AreaID)
			return nil, ErrAreaNotFound
		}
		uc.logger.Error("JoinWaitlist: failed to get area id=%d: %v", req.AreaID, err)
		return nil, fmt.Errorf("%w: failed to get area: %w", ErrInternal, err)
	}

	// 4. Отображаемое имя из профиля, с graceful degradation до email
	userName := displayName("", req.UserEmail)
	if user, err := uc.identityClient.GetUserWithGracefulDegradation(ctx, req.UserID); err == nil {
		userName = displayName(user.FullName(), req.UserEmail)
	}

	date := domain.DateOnly(req.Date)
	var enqueued *domain.WaitlistEntry

	// 5. Хвост очереди назначается в сериализуемой транзакции, чтобы два
	// одновременных запроса не получили одну позицию
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		entry := &domain.WaitlistEntry{
			AreaID:    req.AreaID,
			Date:      date,
			UserID:    req.UserID,
			UserEmail: req.UserEmail,
			UserName:  userName,
		}

		created, err := uc.waitlistRepo.Enqueue(txCtx, entry)
		if err != nil {
			if errors.Is(err, waitlistRepo.ErrDuplicateEntry) {
				return ErrAlreadyQueued
			}
			uc.logger.Error("JoinWaitlist: failed to enqueue: %v", err)
			return fmt.Errorf("%w: failed to enqueue: %w", ErrInternal, err)
		}

		enqueued = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrAlreadyQueued) {
			uc.logger.Warn("JoinWaitlist: user=%s already queued for area=%d date=%s",
				req.UserID, req.AreaID, date.Format(domain.DateFormat))
		}
		return nil, err
	}

	uc.logger.Info("JoinWaitlist: queued user=%s at position %d for area=%d date=%s",
		req.UserID, enqueued.Position, req.AreaID, date.Format(domain.DateFormat))
	if uc.metrics != nil {
		uc.metrics.IncBookingQueued()
	}

	return &Response{
		EntryID:   enqueued.ID,
		AreaID:    enqueued.AreaID,
		Date:      enqueued.Date,
		Position:  enqueued.Position,
		UserName:  enqueued.UserName,
		CreatedAt: enqueued.CreatedAt,
	}, nil
}
