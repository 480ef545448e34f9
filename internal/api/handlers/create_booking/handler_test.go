package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/BookingService/internal/api/middleware"
	createBooking "github.com/deskhive/BookingService/internal/usecase/create_booking"
)

type stubUseCase struct {
	resp *createBooking.Response
	err  error
	got  *createBooking.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, uc *stubUseCase, body interface{}, withUser bool) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(raw))
	if withUser {
		req.Header.Set("X-User-ID", "u1")
	}

	rec := httptest.NewRecorder()
	handler := middleware.Auth(http.HandlerFunc(NewHandler(uc, nopLogger{}).Handle))
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandle_AllocatedReturns201(t *testing.T) {
	uc := &stubUseCase{resp: &createBooking.Response{
		Outcome: createBooking.OutcomeAllocated,
		Booking: &createBooking.BookingData{
			ID: 1, BookableObjectID: 7, AreaID: 3,
			Date:   time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			UserID: "u1", UserName: "Анна", Status: "active",
		},
	}}

	rec := doRequest(t, uc, &CreateBookingRequest{
		BookableObjectID: 7, AreaID: 3, Date: "2026-09-10", UserEmail: "anna@example.com",
	}, true)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "allocated", resp.Outcome)
	require.NotNil(t, resp.Booking)
	assert.Nil(t, resp.WaitlistEntry)
	assert.Equal(t, "2026-09-10", resp.Booking.Date)

	// UserID берётся из заголовка, а не из тела
	require.NotNil(t, uc.got)
	assert.Equal(t, "u1", uc.got.UserID)
}

func TestHandle_QueuedReturns202(t *testing.T) {
	uc := &stubUseCase{resp: &createBooking.Response{
		Outcome: createBooking.OutcomeQueued,
		WaitlistEntry: &createBooking.WaitlistEntryData{
			ID: 5, AreaID: 3,
			Date:     time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			UserID:   "u1",
			Position: 2,
		},
	}}

	rec := doRequest(t, uc, &CreateBookingRequest{
		BookableObjectID: 7, AreaID: 3, Date: "2026-09-10", UserEmail: "anna@example.com",
	}, true)

	assert.Equal(t, http.StatusAccepted, rec.Code)

	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "queued", resp.Outcome)
	require.NotNil(t, resp.WaitlistEntry)
	assert.Equal(t, 2, resp.WaitlistEntry.Position)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid input", err: createBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "past date", err: createBooking.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "outside window", err: createBooking.ErrDateOutsideWindow, wantStatus: http.StatusBadRequest},
		{name: "object not found", err: createBooking.ErrObjectNotFound, wantStatus: http.StatusNotFound},
		{name: "already queued", err: createBooking.ErrAlreadyQueued, wantStatus: http.StatusConflict},
		{name: "internal", err: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &stubUseCase{err: tt.err}, &CreateBookingRequest{
				BookableObjectID: 7, AreaID: 3, Date: "2026-09-10", UserEmail: "anna@example.com",
			}, true)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_MissingUserHeader(t *testing.T) {
	rec := doRequest(t, &stubUseCase{}, &CreateBookingRequest{
		BookableObjectID: 7, AreaID: 3, Date: "2026-09-10", UserEmail: "anna@example.com",
	}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_MalformedDate(t *testing.T) {
	rec := doRequest(t, &stubUseCase{}, &CreateBookingRequest{
		BookableObjectID: 7, AreaID: 3, Date: "10.09.2026", UserEmail: "anna@example.com",
	}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
