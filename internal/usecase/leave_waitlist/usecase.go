package leave_waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/deskhive/BookingService/internal/domain"
	waitlistRepo "github.com/deskhive/BookingService/internal/infra/storage/waitlist"
)

// UseCase use case добровольного выхода из очереди ожидания.
// Удаление из середины очереди перенумеровывает хвост: позиции остаются
// плотными, никого не двигая вперёд головы.
type UseCase struct {
	waitlistRepo   WaitlistRepository
	identityClient IdentityServiceClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
	metrics        Metrics
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	waitlistRepository WaitlistRepository,
	identityClient IdentityServiceClient,
	txManager TransactionManager,
	logger Logger,
	metrics Metrics,
) *UseCase {
	return &UseCase{
		waitlistRepo:   waitlistRepository,
		identityClient: identityClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
		metrics:        metrics,
	}
}

// Execute выполняет use case выхода из очереди ожидания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("LeaveWaitlist: entry=%d, user=%s", req.EntryID, req.UserID)

	if req.EntryID <= 0 {
		return nil, fmt.Errorf("%w: entryID must be positive", ErrInvalidInput)
	}
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	// 1. Запись и проверка владения - до транзакции.
	// Промоушнутая или уже удалённая запись эквивалентна отсутствующей.
	entry, err := uc.waitlistRepo.GetByID(ctx, req.EntryID)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			uc.logger.Warn("LeaveWaitlist: entry id=%d not found", req.EntryID)
			return nil, ErrEntryNotFound
		}
		uc.logger.Error("LeaveWaitlist: repository error for entry id=%d: %v", req.EntryID, err)
		return nil, fmt.Errorf("%w: failed to get entry: %w", ErrInternal, err)
	}

	if !entry.IsWaiting() {
		uc.logger.Warn("LeaveWaitlist: entry id=%d is not waiting (status=%s)", req.EntryID, entry.Status)
		return nil, ErrEntryNotFound
	}

	if err := uc.checkOwnership(ctx, entry, req.UserID); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Удаление и перенумерация хвоста в одной сериализуемой транзакции.
	// Условие status='waiting' в Remove закрывает гонку с промоушеном:
	// если голову успели промоутнуть, запись уже не waiting и выход
	// отвечает NotFound, не трогая позиции.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.waitlistRepo.Remove(txCtx, entry.ID, now); err != nil {
			if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
				return ErrEntryNotFound
			}
			return fmt.Errorf("%w: failed to remove entry: %w", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.IncWaitlistRemoval()
	}
	uc.logger.Info("LeaveWaitlist: removed entry id=%d from area=%d date=%s queue",
		entry.ID, entry.AreaID, entry.Date.Format(domain.DateFormat))

	return &Response{
		EntryID:   entry.ID,
		AreaID:    entry.AreaID,
		Date:      entry.Date,
		RemovedAt: now,
	}, nil
}

// checkOwnership разрешает выход из очереди владельцу записи или администратору
func (uc *UseCase) checkOwnership(ctx context.Context, entry *domain.WaitlistEntry, userID string) error {
	if entry.UserID == userID {
		return nil
	}

	user, err := uc.identityClient.GetUser(ctx, userID)
	if err != nil {
		uc.logger.Warn("LeaveWaitlist: failed to resolve user=%s for admin check: %v", userID, err)
		return ErrAccessDenied
	}
	if !user.IsAdmin {
		uc.logger.Warn("LeaveWaitlist: user=%s is not owner of entry id=%d and not admin", userID, entry.ID)
		return ErrAccessDenied
	}

	uc.logger.Info("LeaveWaitlist: admin override by user=%s for entry id=%d", userID, entry.ID)
	return nil
}
