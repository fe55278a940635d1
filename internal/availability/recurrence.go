package availability

import (
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// Occupancy проверенная занятость без даты
type Occupancy struct {
	Start timegrid.Slot
	Span  timegrid.Span
	Table domain.TableID
}

// Occurrence занятость на конкретную дату
type Occurrence struct {
	Date timegrid.Date
	Occupancy
}

// Expand разворачивает повторяющуюся занятость по окну в соответствии с видом повторения.
// Для неподдерживаемых видов возвращает пустой результат.
func Expand(kind domain.RepeatKind, occupancy Occupancy, window Window) []Occurrence {
	switch kind {
	case domain.RepeatDaily:
		return ExpandDaily(occupancy, window)
	default:
		return nil
	}
}

// ExpandDaily даёт по одной занятости на каждую дату из [window.Min, window.Max)
func ExpandDaily(occupancy Occupancy, window Window) []Occurrence {
	dates := window.Dates()
	occurrences := make([]Occurrence, 0, len(dates))
	for _, date := range dates {
		occurrences = append(occurrences, Occurrence{Date: date, Occupancy: occupancy})
	}
	return occurrences
}

// ExpandRecord проверяет запись и разворачивает её по окну.
// Неподдерживаемый вид повторения не является ошибкой: результат пустой.
func ExpandRecord(record domain.RecurringRecord, window Window) ([]Occurrence, error) {
	kind := record.Kind()
	if kind == domain.RepeatUnsupported {
		return nil, nil
	}

	occupancy, err := parseOccupancy(record.Hour, record.Duration, record.Table)
	if err != nil {
		return nil, err
	}

	return Expand(kind, occupancy, window), nil
}
