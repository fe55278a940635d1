package domain

import (
	"time"

	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// TableID идентификатор физического столика (положительное число)
type TableID int64

// Booking represents a table booking made by a guest
type Booking struct {
	ID       int64
	Date     timegrid.Date
	Start    timegrid.Slot
	Duration timegrid.Span
	Table    TableID
	People   int
	Phone    string
	Address  string

	CreatedAt time.Time
}

// Record returns the booking in the shape the availability index consumes
func (b *Booking) Record() ReservationRecord {
	return ReservationRecord{
		Date:     b.Date.Key(),
		Hour:     timegrid.Hour(b.Start.String()),
		Duration: b.Duration.Hours(),
		Table:    b.Table,
	}
}

// ReservationRecord разовая занятость столика: бронирование или событие.
// Поля хранятся в сыром виде из источника, проверка выполняется при построении индекса.
type ReservationRecord struct {
	Date     string        `json:"date"`     // YYYY-MM-DD, пусто = отсутствует
	Hour     timegrid.Hour `json:"hour"`     // 13.5 или "13:30"
	Duration float64       `json:"duration"` // часы, допускаются дробные
	Table    TableID       `json:"table"`    // 0 = отсутствует
}

// RecurringRecord повторяющееся событие без собственной даты
type RecurringRecord struct {
	Repeat   string        `json:"repeat"`
	Hour     timegrid.Hour `json:"hour"`
	Duration float64       `json:"duration"`
	Table    TableID       `json:"table"`
}

// Kind возвращает вид повторения записи
func (r RecurringRecord) Kind() RepeatKind {
	return ParseRepeatKind(r.Repeat)
}
