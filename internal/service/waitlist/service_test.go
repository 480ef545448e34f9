package waitlist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/BookingService/internal/domain"
	waitlistRepo "github.com/deskhive/BookingService/internal/infra/storage/waitlist"
	"github.com/deskhive/BookingService/internal/integrations/identityservice"
)

type mockWaitlistRepo struct {
	GetPositionFunc      func(ctx context.Context, areaID int64, date time.Time, userID string) (int, error)
	ListQueueFunc        func(ctx context.Context, areaID int64, date time.Time) ([]*domain.WaitlistEntry, error)
	GetWaitingByUserFunc func(ctx context.Context, userID string) ([]*domain.WaitlistEntry, error)
}

func (m *mockWaitlistRepo) GetPosition(ctx context.Context, areaID int64, date time.Time, userID string) (int, error) {
	if m.GetPositionFunc != nil {
		return m.GetPositionFunc(ctx, areaID, date, userID)
	}
	return 0, waitlistRepo.ErrEntryNotFound
}

func (m *mockWaitlistRepo) ListQueue(ctx context.Context, areaID int64, date time.Time) ([]*domain.WaitlistEntry, error) {
	if m.ListQueueFunc != nil {
		return m.ListQueueFunc(ctx, areaID, date)
	}
	return nil, nil
}

func (m *mockWaitlistRepo) GetWaitingByUser(ctx context.Context, userID string) ([]*domain.WaitlistEntry, error) {
	if m.GetWaitingByUserFunc != nil {
		return m.GetWaitingByUserFunc(ctx, userID)
	}
	return nil, nil
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testDate() time.Time {
	return time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
}

func waitingEntry(id int64, userID string, position int) *domain.WaitlistEntry {
	return &domain.WaitlistEntry{
		ID:       id,
		AreaID:   3,
		Date:     testDate(),
		UserID:   userID,
		Position: position,
		Status:   domain.WaitlistStatusWaiting,
	}
}

func TestGetStatus_ReturnsPosition(t *testing.T) {
	repo := &mockWaitlistRepo{
		GetPositionFunc: func(_ context.Context, _ int64, _ time.Time, _ string) (int, error) {
			return 2, nil
		},
	}
	svc := NewService(repo, &stubIdentity{}, nopLogger{}, nil)

	resp, err := svc.GetStatus(context.Background(), 3, testDate(), "u2")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Position)
	assert.Equal(t, "2026-09-10", resp.Date)
}

func TestGetStatus_NotQueued(t *testing.T) {
	svc := NewService(&mockWaitlistRepo{}, &stubIdentity{}, nopLogger{}, nil)

	_, err := svc.GetStatus(context.Background(), 3, testDate(), "u1")
	assert.ErrorIs(t, err, ErrNotQueued)
}

func TestGetQueue_AdminOnly(t *testing.T) {
	repo := &mockWaitlistRepo{
		ListQueueFunc: func(_ context.Context, _ int64, _ time.Time) ([]*domain.WaitlistEntry, error) {
			return []*domain.WaitlistEntry{waitingEntry(1, "u1", 1), waitingEntry(2, "u2", 2)}, nil
		},
	}

	svc := NewService(repo, &stubIdentity{user: &identityservice.User{UserID: "admin", IsAdmin: true}}, nopLogger{}, nil)
	resp, err := svc.GetQueue(context.Background(), 3, testDate(), "admin")
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, 1, resp.Entries[0].Position)

	svc = NewService(repo, &stubIdentity{user: &identityservice.User{UserID: "u1", IsAdmin: false}}, nopLogger{}, nil)
	_, err = svc.GetQueue(context.Background(), 3, testDate(), "u1")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetQueue_SurfacesInvariantViolation(t *testing.T) {
	repo := &mockWaitlistRepo{
		ListQueueFunc: func(_ context.Context, _ int64, _ time.Time) ([]*domain.WaitlistEntry, error) {
			return nil, waitlistRepo.ErrInvariantViolation
		},
	}
	svc := NewService(repo, &stubIdentity{user: &identityservice.User{UserID: "admin", IsAdmin: true}}, nopLogger{}, nil)

	_, err := svc.GetQueue(context.Background(), 3, testDate(), "admin")
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestGetUserEntries(t *testing.T) {
	repo := &mockWaitlistRepo{
		GetWaitingByUserFunc: func(_ context.Context, userID string) ([]*domain.WaitlistEntry, error) {
			return []*domain.WaitlistEntry{waitingEntry(1, userID, 3)}, nil
		},
	}
	svc := NewService(repo, &stubIdentity{}, nopLogger{}, nil)

	resp, err := svc.GetUserEntries(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, 3, resp.Entries[0].Position)
}
