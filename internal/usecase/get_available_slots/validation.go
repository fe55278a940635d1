package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/availability"
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// validateRequest валидирует входные данные и переводит длительность в слоты
func validateRequest(req *Request, venue *domain.Venue) (timegrid.Span, error) {
	if req.Date.IsZero() {
		return 0, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Table != nil && !venue.HasTable(*req.Table) {
		return 0, fmt.Errorf("%w: %d", ErrTableNotFound, *req.Table)
	}

	if req.Duration == 0 {
		return 1, nil
	}

	span, err := timegrid.SpanFromHours(req.Duration)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDuration, err)
	}
	if span <= 0 || span > venue.MaxDuration {
		return 0, fmt.Errorf("%w: %v hours, allowed up to %v", ErrInvalidDuration, req.Duration, venue.MaxDuration.Hours())
	}
	return span, nil
}

// validateDate проверяет, что дата в окне индекса.
// Пока индекс не построен, окно считается от текущей даты.
func validateDate(date timegrid.Date, idx *availability.Index, now time.Time, horizonDays int) error {
	window := availability.HorizonWindow(timegrid.DateOf(now), horizonDays)
	if idx != nil {
		window = idx.Window()
	}
	if !window.Contains(date) {
		return fmt.Errorf("%w: %s not in %s", ErrDateOutsideWindow, date, window)
	}
	return nil
}
