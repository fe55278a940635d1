package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/availability"
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// generateStarts перечисляет времена начала, при которых бронирование длительностью span
// укладывается в часы работы. На сегодня прошедшие слоты отбрасываются.
func generateStarts(venue *domain.Venue, span timegrid.Span, date timegrid.Date, now time.Time) []timegrid.Slot {
	earliest := venue.Open
	if date == timegrid.DateOf(now) {
		minutes := now.Hour()*60 + now.Minute()
		// первый слот, начинающийся не раньше текущего времени
		current := timegrid.Slot((minutes + timegrid.MinutesPerSlot - 1) / timegrid.MinutesPerSlot)
		if current > earliest {
			earliest = current
		}
	}

	starts := make([]timegrid.Slot, 0)
	for start := earliest; venue.Fits(start, span); start++ {
		starts = append(starts, start)
	}
	return starts
}

// calculateFreeTables считает свободные столики для каждого времени начала.
// Столик свободен, если свободны все слоты [start, start+span).
func calculateFreeTables(
	idx *availability.Index,
	date timegrid.Date,
	starts []timegrid.Slot,
	span timegrid.Span,
	candidates []domain.TableID,
) []Slot {
	result := make([]Slot, 0, len(starts))

	for _, start := range starts {
		free := make([]domain.TableID, 0, len(candidates))
		for _, table := range candidates {
			if idx.IsRangeAvailable(date, start, span, table) {
				free = append(free, table)
			}
		}

		result = append(result, Slot{
			Start:           start,
			FreeTables:      free,
			AvailableTables: len(free),
			TotalTables:     len(candidates),
		})
	}

	return result
}
