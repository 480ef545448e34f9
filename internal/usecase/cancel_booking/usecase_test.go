package cancel_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/BookingService/internal/domain"
	bookingRepo "github.com/deskhive/BookingService/internal/infra/storage/booking"
	waitlistRepo "github.com/deskhive/BookingService/internal/infra/storage/waitlist"
	"github.com/deskhive/BookingService/internal/integrations/identityservice"
)

// fakeBookingRepo in-memory журнал с эксклюзивностью слота и отменой
type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
}

func (f *fakeBookingRepo) add(b *domain.Booking) *domain.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	stored := *b
	stored.ID = f.nextID
	stored.Status = domain.StatusActive
	f.bookings[stored.ID] = &stored
	return &stored
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, cancelledAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Status != domain.StatusActive {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = domain.StatusCancelled
	b.CancelledAt = &cancelledAt
	return nil
}

func (f *fakeBookingRepo) TryCreate(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.bookings {
		if existing.Status == domain.StatusActive &&
			existing.BookableObjectID == b.BookableObjectID &&
			existing.Date.Equal(b.Date) {
			return nil, bookingRepo.ErrSlotTaken
		}
	}
	f.nextID++
	created := *b
	created.ID = f.nextID
	created.Status = domain.StatusActive
	created.CreatedAt = time.Now()
	f.bookings[created.ID] = &created
	return &created, nil
}

// fakeWaitlistRepo in-memory очередь с головой и промоушеном
type fakeWaitlistRepo struct {
	mu      sync.Mutex
	entries []*domain.WaitlistEntry
}

func (f *fakeWaitlistRepo) push(e *domain.WaitlistEntry) *domain.WaitlistEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *e
	stored.ID = int64(len(f.entries) + 1)
	stored.Status = domain.WaitlistStatusWaiting
	stored.Position = f.waitingCountLocked(e.AreaID, e.Date) + 1
	f.entries = append(f.entries, &stored)
	return &stored
}

func (f *fakeWaitlistRepo) waitingCountLocked(areaID int64, date time.Time) int {
	count := 0
	for _, e := range f.entries {
		if e.Status == domain.WaitlistStatusWaiting && e.AreaID == areaID && e.Date.Equal(date) {
			count++
		}
	}
	return count
}

func (f *fakeWaitlistRepo) PeekHead(_ context.Context, areaID int64, date time.Time) (*domain.WaitlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.Status == domain.WaitlistStatusWaiting && e.AreaID == areaID && e.Date.Equal(date) && e.Position == domain.HeadPosition {
			copied := *e
			return &copied, nil
		}
	}
	return nil, waitlistRepo.ErrQueueEmpty
}

func (f *fakeWaitlistRepo) MarkPromoted(_ context.Context, id int64, promotedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.ID == id && e.Status == domain.WaitlistStatusWaiting {
			e.Status = domain.WaitlistStatusPromoted
			e.PromotedAt = &promotedAt
			// Перенумеровываем хвост
			for _, rest := range f.entries {
				if rest.Status == domain.WaitlistStatusWaiting && rest.AreaID == e.AreaID &&
					rest.Date.Equal(e.Date) && rest.Position > e.Position {
					rest.Position--
				}
			}
			return nil
		}
	}
	return waitlistRepo.ErrEntryNotFound
}

type stubIdentity struct {
	user *identityservice.User
	err  error
}

func (s *stubIdentity) GetUser(_ context.Context, _ string) (*identityservice.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testDate() time.Time {
	return time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
}

func newTestUseCase(bookings *fakeBookingRepo, waitlist *fakeWaitlistRepo, identity *stubIdentity) *UseCase {
	return NewUseCase(bookings, waitlist, identity, passthroughTxManager{}, nopLogger{}, nil)
}

func TestExecute_CancelWithEmptyQueue(t *testing.T) {
	bookings := newFakeBookingRepo()
	booking := bookings.add(&domain.Booking{
		BookableObjectID: 7, AreaID: 3, Date: testDate(), UserID: "u1", UserEmail: "anna@example.com",
	})
	uc := newTestUseCase(bookings, &fakeWaitlistRepo{}, &stubIdentity{err: identityservice.ErrUserNotFound})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, UserID: "u1"})

	require.NoError(t, err)
	assert.Equal(t, booking.ID, resp.BookingID)
	assert.Nil(t, resp.Promoted)

	stored, err := bookings.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	require.NotNil(t, stored.CancelledAt)
}

func TestExecute_CancelPromotesQueueHead(t *testing.T) {
	bookings := newFakeBookingRepo()
	booking := bookings.add(&domain.Booking{
		BookableObjectID: 7, AreaID: 3, Date: testDate(), UserID: "u1", UserEmail: "anna@example.com",
	})

	waitlist := &fakeWaitlistRepo{}
	head := waitlist.push(&domain.WaitlistEntry{
		AreaID: 3, Date: testDate(), UserID: "u2", UserEmail: "boris@example.com", UserName: "Борис",
	})
	waitlist.push(&domain.WaitlistEntry{
		AreaID: 3, Date: testDate(), UserID: "u3", UserEmail: "vera@example.com", UserName: "Вера",
	})

	uc := newTestUseCase(bookings, waitlist, &stubIdentity{err: identityservice.ErrUserNotFound})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, UserID: "u1"})

	require.NoError(t, err)
	require.NotNil(t, resp.Promoted)
	assert.Equal(t, head.ID, resp.Promoted.EntryID)
	assert.Equal(t, "u2", resp.Promoted.UserID)
	require.NotNil(t, resp.Promoted.NewBooking)
	assert.Equal(t, int64(7), resp.Promoted.NewBooking.BookableObjectID)
	assert.Equal(t, "u2", resp.Promoted.NewBooking.UserID)

	// Замещающее бронирование держит слот
	replacement, err := bookings.GetByID(context.Background(), resp.Promoted.NewBooking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, replacement.Status)

	// Следующий в очереди стал головой
	newHead, err := waitlist.PeekHead(context.Background(), 3, testDate())
	require.NoError(t, err)
	assert.Equal(t, "u3", newHead.UserID)
	assert.Equal(t, domain.HeadPosition, newHead.Position)
}

func TestExecute_RepeatedCancelIsNotFound(t *testing.T) {
	bookings := newFakeBookingRepo()
	booking := bookings.add(&domain.Booking{
		BookableObjectID: 7, AreaID: 3, Date: testDate(), UserID: "u1", UserEmail: "anna@example.com",
	})
	waitlist := &fakeWaitlistRepo{}
	waitlist.push(&domain.WaitlistEntry{AreaID: 3, Date: testDate(), UserID: "u2", UserEmail: "boris@example.com"})
	waitlist.push(&domain.WaitlistEntry{AreaID: 3, Date: testDate(), UserID: "u3", UserEmail: "vera@example.com"})

	uc := newTestUseCase(bookings, waitlist, &stubIdentity{err: identityservice.ErrUserNotFound})

	_, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, UserID: "u1"})
	require.NoError(t, err)

	// Повторная отмена не должна промоутнуть вторую запись
	_, err = uc.Execute(context.Background(), &Request{BookingID: booking.ID, UserID: "u1"})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	head, err := waitlist.PeekHead(context.Background(), 3, testDate())
	require.NoError(t, err)
	assert.Equal(t, "u3", head.UserID)
}

func TestExecute_OwnershipEnforced(t *testing.T) {
	bookings := newFakeBookingRepo()
	booking := bookings.add(&domain.Booking{
		BookableObjectID: 7, AreaID: 3, Date: testDate(), UserID: "u1", UserEmail: "anna@example.com",
	})
	uc := newTestUseCase(bookings, &fakeWaitlistRepo{},
		&stubIdentity{user: &identityservice.User{UserID: "u2", IsAdmin: false}})

	_, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, UserID: "u2"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_AdminCanCancelForeignBooking(t *testing.T) {
	bookings := newFakeBookingRepo()
	booking := bookings.add(&domain.Booking{
		BookableObjectID: 7, AreaID: 3, Date: testDate(), UserID: "u1", UserEmail: "anna@example.com",
	})
	uc := newTestUseCase(bookings, &fakeWaitlistRepo{},
		&stubIdentity{user: &identityservice.User{UserID: "admin", IsAdmin: true}})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, UserID: "admin"})
	require.NoError(t, err)
	assert.Equal(t, booking.ID, resp.BookingID)
}

func TestExecute_UnknownBooking(t *testing.T) {
	uc := newTestUseCase(newFakeBookingRepo(), &fakeWaitlistRepo{}, &stubIdentity{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 404, UserID: "u1"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_SlotReusableAfterCancelWithoutQueue(t *testing.T) {
	bookings := newFakeBookingRepo()
	booking := bookings.add(&domain.Booking{
		BookableObjectID: 7, AreaID: 3, Date: testDate(), UserID: "u1", UserEmail: "anna@example.com",
	})
	uc := newTestUseCase(bookings, &fakeWaitlistRepo{}, &stubIdentity{err: identityservice.ErrUserNotFound})

	_, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, UserID: "u1"})
	require.NoError(t, err)

	// Слот свободен для прямого бронирования
	created, err := bookings.TryCreate(context.Background(), &domain.Booking{
		BookableObjectID: 7, AreaID: 3, Date: testDate(), UserID: "u4", UserEmail: "dima@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, created.Status)
}
