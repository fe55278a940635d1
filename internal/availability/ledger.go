package availability

import (
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// Ledger хранит занятость столиков: дата -> слот -> множество столиков.
// Отсутствие ключа означает, что в этот момент всё свободно.
type Ledger struct {
	days        map[timegrid.Date]map[timegrid.Slot]TableSet
	occupations int
}

// NewLedger создаёт пустой реестр
func NewLedger() *Ledger {
	return &Ledger{days: make(map[timegrid.Date]map[timegrid.Slot]TableSet)}
}

// MarkOccupied отмечает столик занятым на каждом слоте полуинтервала [start, start+span).
// Слоты после полуночи переносятся на следующую дату. Нулевая или отрицательная
// длительность ничего не добавляет. Возвращает количество добавленных занятостей.
func (l *Ledger) MarkOccupied(date timegrid.Date, start timegrid.Slot, span timegrid.Span, table domain.TableID) int {
	if span <= 0 || start < 0 {
		return 0
	}

	for i := 0; i < int(span); i++ {
		slot := int(start) + i
		day := date
		if slot >= timegrid.SlotsPerDay {
			day = date.AddDays(slot / timegrid.SlotsPerDay)
			slot %= timegrid.SlotsPerDay
		}
		l.insert(day, timegrid.Slot(slot), table)
	}

	l.occupations += int(span)
	return int(span)
}

// IsOccupied returns true if the table is recorded at (date, slot)
func (l *Ledger) IsOccupied(date timegrid.Date, slot timegrid.Slot, table domain.TableID) bool {
	return l.occupied(date, slot).Has(table)
}

// OccupiedTables возвращает копию множества занятых столиков; пустое, если записей нет
func (l *Ledger) OccupiedTables(date timegrid.Date, slot timegrid.Slot) TableSet {
	return l.occupied(date, slot).clone()
}

// Occupations общее количество добавленных занятостей, включая повторы
func (l *Ledger) Occupations() int {
	return l.occupations
}

func (l *Ledger) occupied(date timegrid.Date, slot timegrid.Slot) TableSet {
	slots, ok := l.days[date]
	if !ok {
		return nil
	}
	return slots[slot]
}

func (l *Ledger) insert(date timegrid.Date, slot timegrid.Slot, table domain.TableID) {
	slots, ok := l.days[date]
	if !ok {
		slots = make(map[timegrid.Slot]TableSet)
		l.days[date] = slots
	}

	tables, ok := slots[slot]
	if !ok {
		tables = make(TableSet)
		slots[slot] = tables
	}
	tables.Add(table)
}
