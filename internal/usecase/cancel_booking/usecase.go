package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/deskhive/BookingService/internal/domain"
	bookingRepo "github.com/deskhive/BookingService/internal/infra/storage/booking"
	waitlistRepo "github.com/deskhive/BookingService/internal/infra/storage/waitlist"
)

// UseCase use case отмены бронирования с промоушеном очереди.
// Отмена, промоушен головы и создание замещающего бронирования - единственная
// мульти-сущностная транзакция в системе: никакой наблюдатель не должен
// увидеть свободный слот раньше, чем появится замещающее бронирование.
type UseCase struct {
	bookingRepo    BookingRepository
	waitlistRepo   WaitlistRepository
	identityClient IdentityServiceClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
	metrics        Metrics
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepository BookingRepository,
	waitlistRepository WaitlistRepository,
	identityClient IdentityServiceClient,
	txManager TransactionManager,
	logger Logger,
	metrics Metrics,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepository,
		waitlistRepo:   waitlistRepository,
		identityClient: identityClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
		metrics:        metrics,
	}
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, user=%s", req.BookingID, req.UserID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	// 1. Бронирование и проверка владения - до транзакции.
	// Уже отменённое бронирование эквивалентно отсутствующему.
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}

	if !booking.IsActive() {
		uc.logger.Warn("CancelBooking: booking id=%d is already cancelled", req.BookingID)
		return nil, ErrBookingNotFound
	}

	if err := uc.checkOwnership(ctx, booking, req.UserID); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()
	var promoted *PromotedPayload

	// 2. Отмена + промоушен в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Условие status='active' в Cancel закрывает гонку двух отмен:
		// проигравшая транзакция получает NotFound и не трогает очередь
		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, now); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to cancel booking: %w", ErrInternal, err)
		}

		// Голова очереди той же (зоны, даты) под блокировкой
		head, err := uc.waitlistRepo.PeekHead(txCtx, booking.AreaID, booking.Date)
		if err != nil {
			if errors.Is(err, waitlistRepo.ErrQueueEmpty) {
				// Очередь пуста - слот остаётся свободным для прямого бронирования
				return nil
			}
			return fmt.Errorf("%w: failed to peek waitlist head: %w", ErrInternal, err)
		}

		if err := uc.waitlistRepo.MarkPromoted(txCtx, head.ID, now); err != nil {
			return fmt.Errorf("%w: failed to promote entry id=%d: %w", ErrInternal, head.ID, err)
		}

		// Замещающее бронирование на тот же слот от имени головы очереди.
		// Конфликт здесь невозможен в корректном состоянии: слот только что
		// освобождён этой же транзакцией.
		replacement := &domain.Booking{
			BookableObjectID: booking.BookableObjectID,
			AreaID:           booking.AreaID,
			Date:             booking.Date,
			UserID:           head.UserID,
			UserEmail:        head.UserEmail,
			UserName:         head.UserName,
		}

		created, err := uc.bookingRepo.TryCreate(txCtx, replacement)
		if err != nil {
			return fmt.Errorf("%w: failed to create replacement booking for entry id=%d: %w",
				ErrInternal, head.ID, err)
		}

		promoted = promotedPayload(head, created)
		return nil
	})

	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.IncBookingCancelled()
	}
	uc.logger.Info("CancelBooking: cancelled booking id=%d", booking.ID)

	if promoted != nil {
		if uc.metrics != nil {
			uc.metrics.IncWaitlistPromotion()
		}
		uc.logger.Info("CancelBooking: promoted waitlist entry id=%d to booking id=%d (user=%s)",
			promoted.EntryID, promoted.NewBooking.ID, promoted.UserID)
	}

	return &Response{
		BookingID:   booking.ID,
		CancelledAt: now,
		Promoted:    promoted,
	}, nil
}

// checkOwnership разрешает отмену владельцу бронирования или администратору
func (uc *UseCase) checkOwnership(ctx context.Context, booking *domain.Booking, userID string) error {
	if booking.UserID == userID {
		return nil
	}

	user, err := uc.identityClient.GetUser(ctx, userID)
	if err != nil {
		uc.logger.Warn("CancelBooking: failed to resolve user=%s for admin check: %v", userID, err)
		return ErrAccessDenied
	}
	if !user.IsAdmin {
		uc.logger.Warn("CancelBooking: user=%s is not owner of booking id=%d and not admin", userID, booking.ID)
		return ErrAccessDenied
	}

	uc.logger.Info("CancelBooking: admin override by user=%s for booking id=%d", userID, booking.ID)
	return nil
}
