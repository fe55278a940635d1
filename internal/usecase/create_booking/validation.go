package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/availability"
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, venue *domain.Venue) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Table <= 0 {
		return fmt.Errorf("%w: table must be positive", ErrInvalidInput)
	}

	if req.People < domain.MinPeople || req.People > venue.MaxPeople {
		return fmt.Errorf("%w: %d, allowed %d-%d", ErrInvalidPeople, req.People, domain.MinPeople, venue.MaxPeople)
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if len(phone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone is longer than %d characters", ErrInvalidInput, domain.MaxPhoneLength)
	}

	if len(req.Address) > domain.MaxAddressLength {
		return fmt.Errorf("%w: address is longer than %d characters", ErrInvalidInput, domain.MaxAddressLength)
	}

	return nil
}

// parseTime переводит время начала и длительность в слоты
func parseTime(req *Request, venue *domain.Venue) (timegrid.Slot, timegrid.Span, error) {
	if req.Hour.IsZero() {
		return 0, 0, fmt.Errorf("%w: hour is required", ErrInvalidTime)
	}

	start, err := req.Hour.Slot()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}

	span, err := timegrid.SpanFromHours(req.Duration)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidDuration, err)
	}
	if span <= 0 || span > venue.MaxDuration {
		return 0, 0, fmt.Errorf("%w: %v hours, allowed up to %v", ErrInvalidDuration, req.Duration, venue.MaxDuration.Hours())
	}

	return start, span, nil
}

// validateSchedule проверяет часы работы, окно бронирования и что время ещё не прошло.
// Дата должна попадать и в горизонт от сегодняшнего дня, и в окно опубликованного индекса.
func validateSchedule(date timegrid.Date, start timegrid.Slot, span timegrid.Span, venue *domain.Venue, idx *availability.Index, now time.Time) error {
	if !venue.Fits(start, span) {
		return fmt.Errorf("%w: %s for %v hours (open %s-%s)", ErrOutsideOpeningHours, start, span.Hours(), venue.Open, venue.Close)
	}

	today := timegrid.DateOf(now)
	window := availability.HorizonWindow(today, venue.HorizonDays)
	if !window.Contains(date) {
		return fmt.Errorf("%w: %s not in %s", ErrDateOutsideWindow, date, window)
	}
	if idx != nil && !idx.Window().Contains(date) {
		return fmt.Errorf("%w: %s not in index window %s", ErrDateOutsideWindow, date, idx.Window())
	}

	if date == today && int(start)*timegrid.MinutesPerSlot < now.Hour()*60+now.Minute() {
		return fmt.Errorf("%w: %s", ErrTooLateToBook, start)
	}

	return nil
}

// hasOverlap проверяет пересечение [start, start+span) с уже сохранёнными бронированиями
// столика на ту же дату. Нечитаемые записи пропускаются: их учитывает индекс.
func hasOverlap(records []domain.ReservationRecord, start timegrid.Slot, span timegrid.Span) bool {
	end := start.Add(span)
	for _, record := range records {
		recordStart, err := record.Hour.Slot()
		if err != nil {
			continue
		}
		recordSpan, err := timegrid.SpanFromHours(record.Duration)
		if err != nil || recordSpan <= 0 {
			continue
		}
		if recordStart < end && recordStart.Add(recordSpan) > start {
			return true
		}
	}
	return false
}
