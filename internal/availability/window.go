package availability

import (
	"fmt"

	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// Window полуоткрытый диапазон дат [Min, Max), в пределах которого
// разворачиваются повторяющиеся события
type Window struct {
	Min timegrid.Date
	Max timegrid.Date
}

// HorizonWindow окно из days дней, начиная с from
func HorizonWindow(from timegrid.Date, days int) Window {
	if days < 0 {
		days = 0
	}
	return Window{Min: from, Max: from.AddDays(days)}
}

// Contains returns true if the date is inside [Min, Max)
func (w Window) Contains(date timegrid.Date) bool {
	return !date.Before(w.Min) && date.Before(w.Max)
}

// Days количество дней в окне
func (w Window) Days() int {
	days := w.Min.DaysUntil(w.Max)
	if days < 0 {
		return 0
	}
	return days
}

// Dates все даты окна по порядку
func (w Window) Dates() []timegrid.Date {
	dates := make([]timegrid.Date, 0, w.Days())
	for d := w.Min; d.Before(w.Max); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)", w.Min, w.Max)
}
