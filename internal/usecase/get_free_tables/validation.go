package get_free_tables

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/availability"
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// validateRequest проверяет время и столик по правилам заведения
func validateRequest(req *Request, venue *domain.Venue) error {
	if !venue.IsOpenAt(req.Slot) {
		return fmt.Errorf("%w: %s (open %s-%s)", ErrOutsideOpeningHours, req.Slot, venue.Open, venue.Close)
	}
	if req.Table != nil && !venue.HasTable(*req.Table) {
		return fmt.Errorf("%w: %d", ErrTableNotFound, *req.Table)
	}
	return nil
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
