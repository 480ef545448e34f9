package waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deskhive/BookingService/internal/domain"
	waitlistRepo "github.com/deskhive/BookingService/internal/infra/storage/waitlist"
	"github.com/deskhive/BookingService/internal/service/waitlist/models"
)

// Service сервис чтения очередей ожидания
type Service struct {
	waitlistRepo   WaitlistRepository
	identityClient IdentityServiceClient
	logger         Logger
	metrics        Metrics
}

// NewService создает новый экземпляр сервиса очередей
func NewService(
	waitlistRepo WaitlistRepository,
	identityClient IdentityServiceClient,
	logger Logger,
	metrics Metrics,
) *Service {
	return &Service{
		waitlistRepo:   waitlistRepo,
		identityClient: identityClient,
		logger:         logger,
		metrics:        metrics,
	}
}

// GetStatus возвращает позицию пользователя в очереди зоны на дату
func (s *Service) GetStatus(ctx context.Context, areaID int64, date time.Time, userID string) (*models.PositionResponse, error) {
	s.logger.Info("GetStatus: area=%d, date=%s, user=%s", areaID, date.Format(domain.DateFormat), userID)

	if areaID <= 0 {
		return nil, fmt.Errorf("%w: areaID must be positive", ErrInvalidInput)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	day := domain.DateOnly(date)
	position, err := s.waitlistRepo.GetPosition(ctx, areaID, day, userID)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			return nil, ErrNotQueued
		}
		s.logger.Error("GetStatus: repository error for area=%d user=%s: %v", areaID, userID, err)
		return nil, fmt.Errorf("%w: GetStatus - repository error: %v", ErrInternal, err)
	}

	return &models.PositionResponse{
		AreaID:   areaID,
		Date:     day.Format(domain.DateFormat),
		Position: position,
	}, nil
}

// GetQueue возвращает очередь зоны на дату в порядке позиций.
// Доступно только администратору. Нарушение плотности позиций не маскируется
func (s *Service) GetQueue(ctx context.Context, areaID int64, date time.Time, callerID string) (*models.QueueResponse, error) {
	s.logger.Info("GetQueue: area=%d, date=%s, caller=%s", areaID, date.Format(domain.DateFormat), callerID)

	if areaID <= 0 {
		return nil, fmt.Errorf("%w: areaID must be positive", ErrInvalidInput)
	}

	if err := s.checkAdmin(ctx, callerID); err != nil {
		s.logger.Warn("GetQueue: access denied for user=%s", callerID)
		return nil, err
	}

	day := domain.DateOnly(date)
	entries, err := s.waitlistRepo.ListQueue(ctx, areaID, day)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrInvariantViolation) {
			s.logger.Error("GetQueue: queue positions are not dense for area=%d date=%s: %v",
				areaID, day.Format(domain.DateFormat), err)
			if s.metrics != nil {
				s.metrics.IncInvariantViolation("waitlist")
			}
			return nil, fmt.Errorf("%w: %v", ErrInvariantViolation, err)
		}
		s.logger.Error("GetQueue: repository error for area=%d: %v", areaID, err)
		return nil, fmt.Errorf("%w: GetQueue - repository error: %v", ErrInternal, err)
	}

	return &models.QueueResponse{
		AreaID:  areaID,
		Date:    day.Format(domain.DateFormat),
		Entries: models.FromDomainEntryList(entries),
	}, nil
}

// GetUserEntries возвращает все записи пользователя в очередях со статусом waiting
func (s *Service) GetUserEntries(ctx context.Context, userID string) (*models.EntryListResponse, error) {
	s.logger.Info("GetUserEntries: user=%s", userID)

	if userID == "" {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	entries, err := s.waitlistRepo.GetWaitingByUser(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserEntries: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserEntries - repository error: %v", ErrInternal, err)
	}

	return &models.EntryListResponse{Entries: models.FromDomainEntryList(entries)}, nil
}

// checkAdmin разрешает доступ только администратору
func (s *Service) checkAdmin(ctx context.Context, callerID string) error {
	if callerID == "" {
		return ErrAccessDenied
	}

	user, err := s.identityClient.GetUser(ctx, callerID)
	if err != nil {
		return ErrAccessDenied
	}
	if !user.IsAdmin {
		return ErrAccessDenied
	}
	return nil
}
