package join_waitlist

import (
	"fmt"
	"strings"
	"time"

	"github.com/deskhive/BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AreaID <= 0 {
		return fmt.Errorf("%w: areaID must be positive", ErrInvalidInput)
	}

	if req.UserID == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.UserEmail == "" {
		return fmt.Errorf("%w: userEmail is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата попадает в окно бронирования
// [сегодня, сегодня + windowDays], границы включительно
func validateDate(bookingDate, now time.Time, windowDays int) error {
	date := domain.DateOnly(bookingDate)
	today := domain.DateOnly(now)

	if date.Before(today) {
		return ErrInvalidDate
	}

	maxDate := today.AddDate(0, 0, windowDays)
	if date.After(maxDate) {
		return fmt.Errorf("%w: can only join waitlist %d days in advance", ErrDateOutsideWindow, windowDays)
	}

	return nil
}

// displayName выбирает отображаемое имя: полное имя из профиля,
// при его отсутствии - локальная часть email
func displayName(fullName, email string) string {
	if fullName != "" {
		return fullName
	}
	if idx := strings.IndexByte(email, '@'); idx > 0 {
		return email[:idx]
	}
	return email
}
