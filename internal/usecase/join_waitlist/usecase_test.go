package join_waitlist

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/BookingService/internal/domain"
	waitlistRepo "github.com/deskhive/BookingService/internal/infra/storage/waitlist"
	"github.com/deskhive/BookingService/internal/integrations/catalogservice"
	"github.com/deskhive/BookingService/internal/integrations/identityservice"
)

type fakeWaitlistRepo struct {
	mu      sync.Mutex
	entries []*domain.WaitlistEntry
}

func (f *fakeWaitlistRepo) Enqueue(_ context.Context, e *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tail := 0
	for _, existing := range f.entries {
		if existing.Status != domain.WaitlistStatusWaiting || existing.AreaID != e.AreaID || !existing.Date.Equal(e.Date) {
			continue
		}
		if existing.UserID == e.UserID {
			return nil, waitlistRepo.ErrDuplicateEntry
		}
		if existing.Position > tail {
			tail = existing.Position
		}
	}

	created := *e
	created.ID = int64(len(f.entries) + 1)
	created.Status = domain.WaitlistStatusWaiting
	created.Position = tail + 1
	created.CreatedAt = time.Now()
	f.entries = append(f.entries, &created)
	return &created, nil
}

type stubCatalog struct {
	objects []catalogservice.BookableObject
	err     error
}

func (s *stubCatalog) GetAreaObjects(_ context.Context, _ int64) ([]catalogservice.BookableObject, error) {
	return s.objects, s.err
}

type stubIdentity struct {
	user *identityservice.User
	err  error
}

func (s *stubIdentity) GetUserWithGracefulDegradation(_ context.Context, _ string) (*identityservice.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeWaitlistRepo, catalog *stubCatalog, now time.Time) *UseCase {
	uc := NewUseCase(
		repo,
		catalog,
		&stubIdentity{user: &identityservice.User{UserID: "u1", FirstName: "Анна", LastName: "Орлова"}},
		passthroughTxManager{},
		domain.DefaultBookingWindowDays,
		nopLogger{},
		nil,
	)
	uc.timeProvider = fixedTime{t: now}
	return uc
}

func TestExecute_AssignsTailPosition(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	date := now.AddDate(0, 0, 5)
	catalog := &stubCatalog{objects: []catalogservice.BookableObject{{ID: 7, AreaID: 3, Name: "Desk 7", IsActive: true}}}
	repo := &fakeWaitlistRepo{}
	uc := newTestUseCase(repo, catalog, now)

	first, err := uc.Execute(context.Background(), &Request{
		AreaID: 3, Date: date, UserID: "u1", UserEmail: "anna@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Position)
	assert.Equal(t, "Анна Орлова", first.UserName)

	second, err := uc.Execute(context.Background(), &Request{
		AreaID: 3, Date: date, UserID: "u2", UserEmail: "boris@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Position)
}

func TestExecute_RejectsDuplicate(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	date := now.AddDate(0, 0, 5)
	catalog := &stubCatalog{objects: []catalogservice.BookableObject{{ID: 7, AreaID: 3, Name: "Desk 7", IsActive: true}}}
	uc := newTestUseCase(&fakeWaitlistRepo{}, catalog, now)

	_, err := uc.Execute(context.Background(), &Request{
		AreaID: 3, Date: date, UserID: "u1", UserEmail: "anna@example.com",
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{
		AreaID: 3, Date: date, UserID: "u1", UserEmail: "anna@example.com",
	})
	assert.ErrorIs(t, err, ErrAlreadyQueued)
}

func TestExecute_SameUserDifferentDatesAllowed(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	catalog := &stubCatalog{objects: []catalogservice.BookableObject{{ID: 7, AreaID: 3, Name: "Desk 7", IsActive: true}}}
	uc := newTestUseCase(&fakeWaitlistRepo{}, catalog, now)

	_, err := uc.Execute(context.Background(), &Request{
		AreaID: 3, Date: now.AddDate(0, 0, 5), UserID: "u1", UserEmail: "anna@example.com",
	})
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), &Request{
		AreaID: 3, Date: now.AddDate(0, 0, 6), UserID: "u1", UserEmail: "anna@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Position)
}

func TestExecute_UnknownArea(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeWaitlistRepo{}, &stubCatalog{err: catalogservice.ErrAreaNotFound}, now)

	_, err := uc.Execute(context.Background(), &Request{
		AreaID: 99, Date: now.AddDate(0, 0, 5), UserID: "u1", UserEmail: "anna@example.com",
	})
	assert.ErrorIs(t, err, ErrAreaNotFound)
}

func TestExecute_WindowEnforced(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	catalog := &stubCatalog{objects: []catalogservice.BookableObject{{ID: 7, AreaID: 3, Name: "Desk 7", IsActive: true}}}
	uc := newTestUseCase(&fakeWaitlistRepo{}, catalog, now)

	_, err := uc.Execute(context.Background(), &Request{
		AreaID: 3, Date: now.AddDate(0, 0, domain.DefaultBookingWindowDays+1), UserID: "u1", UserEmail: "anna@example.com",
	})
	assert.ErrorIs(t, err, ErrDateOutsideWindow)

	_, err = uc.Execute(context.Background(), &Request{
		AreaID: 3, Date: now.AddDate(0, 0, -1), UserID: "u1", UserEmail: "anna@example.com",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}
