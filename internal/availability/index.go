package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// Input три набора записей, из которых строится индекс.
// Все три должны быть получены полностью до вызова Build.
type Input struct {
	Bookings  []domain.ReservationRecord `json:"bookings"`
	Events    []domain.ReservationRecord `json:"events"`
	Recurring []domain.RecurringRecord   `json:"recurring"`
}

// BuildStats итоги сборки индекса
type BuildStats struct {
	Bookings           int // принятые бронирования
	Events             int // принятые разовые события
	Recurring          int // принятые повторяющиеся события
	Unsupported        int // повторяющиеся события с неизвестным видом повторения
	SkippedMalformed   int
	SkippedInvalidTime int
	Occupations        int
}

// Skipped общее число пропущенных записей
func (s BuildStats) Skipped() int {
	return s.SkippedMalformed + s.SkippedInvalidTime
}

// Index неизменяемый снимок занятости столиков в пределах окна.
// После Build не модифицируется, поэтому безопасен для конкурентного чтения.
type Index struct {
	id      uuid.UUID
	ledger  *Ledger
	window  Window
	builtAt time.Time
	stats   BuildStats
}

const (
	sourceEvents    = "event"
	sourceBookings  = "booking"
	sourceRecurring = "recurring event"
)

// Build строит индекс с нуля: сначала разовые события, затем бронирования,
// затем повторяющиеся события, развёрнутые по окну. Результат не зависит от порядка
// записей. Некорректные записи пропускаются с предупреждением.
func Build(input Input, window Window, logger Logger) *Index {
	idx := &Index{
		id:      uuid.New(),
		ledger:  NewLedger(),
		window:  window,
		builtAt: time.Now(),
	}

	idx.stats.Events = idx.foldReservations(sourceEvents, input.Events, logger)
	idx.stats.Bookings = idx.foldReservations(sourceBookings, input.Bookings, logger)

	for i, record := range input.Recurring {
		if record.Kind() == domain.RepeatUnsupported {
			idx.stats.Unsupported++
			continue
		}

		occurrences, err := ExpandRecord(record, window)
		if err != nil {
			idx.skip(sourceRecurring, i, err, logger)
			continue
		}

		for _, occ := range occurrences {
			idx.ledger.MarkOccupied(occ.Date, occ.Start, occ.Span, occ.Table)
		}
		idx.stats.Recurring++
	}

	idx.stats.Occupations = idx.ledger.Occupations()

	logger.Info("Build: snapshot=%s window=%s bookings=%d events=%d recurring=%d unsupported=%d skipped=%d occupations=%d",
		idx.id, window, idx.stats.Bookings, idx.stats.Events, idx.stats.Recurring,
		idx.stats.Unsupported, idx.stats.Skipped(), idx.stats.Occupations)

	return idx
}

func (idx *Index) foldReservations(source string, records []domain.ReservationRecord, logger Logger) int {
	accepted := 0
	for i, record := range records {
		date, occupancy, err := parseReservation(record)
		if err != nil {
			idx.skip(source, i, err, logger)
			continue
		}
		idx.ledger.MarkOccupied(date, occupancy.Start, occupancy.Span, occupancy.Table)
		accepted++
	}
	return accepted
}

func (idx *Index) skip(source string, position int, err error, logger Logger) {
	if errors.Is(err, timegrid.ErrInvalidTimeFormat) {
		idx.stats.SkippedInvalidTime++
	} else {
		idx.stats.SkippedMalformed++
	}
	logger.Warn("Build: skipping %s #%d: %v", source, position, err)
}

// parseReservation проверяет разовую запись
func parseReservation(record domain.ReservationRecord) (timegrid.Date, Occupancy, error) {
	if record.Date == "" {
		return timegrid.Date{}, Occupancy{}, fmt.Errorf("%w: missing date", ErrMalformedRecord)
	}

	date, err := timegrid.ParseDate(record.Date)
	if err != nil {
		return timegrid.Date{}, Occupancy{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	occupancy, err := parseOccupancy(record.Hour, record.Duration, record.Table)
	if err != nil {
		return timegrid.Date{}, Occupancy{}, err
	}

	return date, occupancy, nil
}

// parseOccupancy переводит сырые время, длительность и столик во внутреннее представление
func parseOccupancy(hour timegrid.Hour, duration float64, table domain.TableID) (Occupancy, error) {
	if table <= 0 {
		return Occupancy{}, fmt.Errorf("%w: missing table", ErrMalformedRecord)
	}
	if hour.IsZero() {
		return Occupancy{}, fmt.Errorf("%w: missing hour", ErrMalformedRecord)
	}

	start, err := hour.Slot()
	if err != nil {
		if errors.Is(err, timegrid.ErrNotAligned) {
			return Occupancy{}, fmt.Errorf("%w: hour %q: %v", ErrMalformedRecord, hour, err)
		}
		return Occupancy{}, fmt.Errorf("hour %q: %w", hour, err)
	}

	span, err := timegrid.SpanFromHours(duration)
	if err != nil {
		return Occupancy{}, fmt.Errorf("%w: duration %v: %v", ErrMalformedRecord, duration, err)
	}

	return Occupancy{Start: start, Span: span, Table: table}, nil
}
