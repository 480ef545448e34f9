package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/deskhive/BookingService/internal/domain"
	bookingRepo "github.com/deskhive/BookingService/internal/infra/storage/booking"
	catalogClient "github.com/deskhive/BookingService/internal/integrations/catalogservice"
	"github.com/deskhive/BookingService/internal/service/bookings/models"
	"github.com/deskhive/BookingService/pkg/ptr"
)

// Service сервис чтения журнала бронирований
type Service struct {
	bookingRepo    BookingRepository
	catalogClient  CatalogServiceClient
	identityClient IdentityServiceClient
	timeProvider   TimeProvider
	logger         Logger
	metrics        Metrics
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	catalogClient CatalogServiceClient,
	identityClient IdentityServiceClient,
	logger Logger,
	metrics Metrics,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		catalogClient:  catalogClient,
		identityClient: identityClient,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
		metrics:        metrics,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - бронирование видно владельцу или администратору
func (s *Service) GetByID(ctx context.Context, id int64, callerID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%s", id, callerID)

	if id <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, booking.UserID, callerID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%d", callerID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования пользователя.
// Без периода возвращает предстоящие бронирования начиная с сегодняшнего дня,
// с периодом - бронирования в границах [from, to]
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s", req.UserID)

	if req.UserID == "" {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	// Чужая история видна только администратору
	if req.CallerID != req.UserID {
		if err := s.checkUserAccess(ctx, req.UserID, req.CallerID); err != nil {
			s.logger.Warn("GetUserBookings: access denied for user=%s to bookings of user=%s",
				req.CallerID, req.UserID)
			return nil, err
		}
	}

	var (
		result []*domain.Booking
		err    error
	)
	if req.From != nil && req.To != nil {
		result, err = s.bookingRepo.GetByUserBetweenDates(ctx, req.UserID,
			domain.DateOnly(*req.From), domain.DateOnly(*req.To))
	} else {
		today := domain.DateOnly(s.timeProvider.Now())
		result, err = s.bookingRepo.GetUpcomingByUser(ctx, req.UserID, today)
	}
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%s", len(result), req.UserID)
	return models.FromDomainBookingList(result), nil
}

// GetDaySchedule собирает расписание зоны на день: объекты из каталога,
// занятость из журнала бронирований. Имя занявшего денормализовано на
// строке бронирования, дополнительных походов в IdentityService нет
func (s *Service) GetDaySchedule(ctx context.Context, req *models.GetDayScheduleRequest) (*models.DayScheduleResponse, error) {
	s.logger.Info("GetDaySchedule: area=%d, date=%s", req.AreaID, req.Date.Format(domain.DateFormat))

	if req.AreaID <= 0 {
		return nil, fmt.Errorf("%w: areaID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	objects, err := s.catalogClient.GetAreaObjects(ctx, req.AreaID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrAreaNotFound) {
			s.logger.Warn("GetDaySchedule: area id=%d not found", req.AreaID)
			return nil, ErrAreaNotFound
		}
		s.logger.Error("GetDaySchedule: failed to get area objects for area=%d: %v", req.AreaID, err)
		return nil, fmt.Errorf("%w: GetDaySchedule - catalog error: %v", ErrInternal, err)
	}

	date := domain.DateOnly(req.Date)
	active, err := s.bookingRepo.GetActiveByAreaAndDate(ctx, req.AreaID, date)
	if err != nil {
		s.logger.Error("GetDaySchedule: repository error for area=%d: %v", req.AreaID, err)
		return nil, fmt.Errorf("%w: GetDaySchedule - repository error: %v", ErrInternal, err)
	}

	// Один объект - максимум одно активное бронирование. Дубль означает
	// нарушение эксклюзивности и не маскируется
	byObject := make(map[int64]*domain.Booking, len(active))
	for _, b := range active {
		if _, exists := byObject[b.BookableObjectID]; exists {
			s.logger.Error("GetDaySchedule: multiple active bookings for object=%d area=%d date=%s",
				b.BookableObjectID, req.AreaID, date.Format(domain.DateFormat))
			if s.metrics != nil {
				s.metrics.IncInvariantViolation("booking")
			}
			return nil, fmt.Errorf("%w: object %d has multiple active bookings", ErrInvariantViolation, b.BookableObjectID)
		}
		byObject[b.BookableObjectID] = b
	}

	resp := &models.DayScheduleResponse{
		AreaID: req.AreaID,
		Date:   date.Format(domain.DateFormat),
		Slots:  make([]models.ScheduleSlot, 0, len(objects)),
	}
	for _, obj := range objects {
		slot := models.ScheduleSlot{
			BookableObjectID: obj.ID,
			ObjectName:       obj.Name,
		}
		if b, ok := byObject[obj.ID]; ok {
			slot.Occupied = true
			slot.BookingID = ptr.Ptr(b.ID)
			slot.OccupantID = ptr.Ptr(b.UserID)
			slot.OccupantName = ptr.Ptr(b.UserName)
		}
		resp.Slots = append(resp.Slots, slot)
	}

	return resp, nil
}

// GetSlotOccupancy проверяет занятость объекта на дату.
// Дубль активных бронирований на слот всплывает как нарушение инварианта
func (s *Service) GetSlotOccupancy(ctx context.Context, req *models.GetSlotOccupancyRequest) (*models.SlotOccupancyResponse, error) {
	s.logger.Info("GetSlotOccupancy: object=%d, date=%s", req.BookableObjectID, req.Date.Format(domain.DateFormat))

	if req.BookableObjectID <= 0 {
		return nil, fmt.Errorf("%w: bookableObjectID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	object, err := s.catalogClient.GetBookableObject(ctx, req.BookableObjectID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrObjectNotFound) {
			s.logger.Warn("GetSlotOccupancy: object id=%d not found", req.BookableObjectID)
			return nil, ErrObjectNotFound
		}
		s.logger.Error("GetSlotOccupancy: failed to get object id=%d: %v", req.BookableObjectID, err)
		return nil, fmt.Errorf("%w: GetSlotOccupancy - catalog error: %v", ErrInternal, err)
	}

	date := domain.DateOnly(req.Date)
	occupied, err := s.bookingRepo.IsOccupied(ctx, req.BookableObjectID, date)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrInvariantViolation) {
			s.logger.Error("GetSlotOccupancy: multiple active bookings for object=%d date=%s",
				req.BookableObjectID, date.Format(domain.DateFormat))
			if s.metrics != nil {
				s.metrics.IncInvariantViolation("booking")
			}
			return nil, fmt.Errorf("%w: object %d has multiple active bookings", ErrInvariantViolation, req.BookableObjectID)
		}
		s.logger.Error("GetSlotOccupancy: repository error for object=%d: %v", req.BookableObjectID, err)
		return nil, fmt.Errorf("%w: GetSlotOccupancy - repository error: %v", ErrInternal, err)
	}

	return &models.SlotOccupancyResponse{
		BookableObjectID: object.ID,
		ObjectName:       object.Name,
		Date:             date.Format(domain.DateFormat),
		Occupied:         occupied,
	}, nil
}

// checkUserAccess разрешает доступ владельцу или администратору
func (s *Service) checkUserAccess(ctx context.Context, ownerID, callerID string) error {
	if ownerID == callerID {
		return nil
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
