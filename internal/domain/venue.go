package domain

import (
	"sort"

	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// Venue represents the venue's fixed tables and booking rules
type Venue struct {
	Tables      []TableID
	Open        timegrid.Slot // первый слот работы
	Close       timegrid.Slot // слот закрытия (не включается), может быть 48 = 24:00
	MaxPeople   int
	MaxDuration timegrid.Span
	HorizonDays int // сколько дней вперёд открыто бронирование
}

// HasTable returns true if the table belongs to the venue
func (v *Venue) HasTable(id TableID) bool {
	for _, t := range v.Tables {
		if t == id {
			return true
		}
	}
	return false
}

// IsOpenAt returns true if the slot is within opening hours
func (v *Venue) IsOpenAt(slot timegrid.Slot) bool {
	return slot >= v.Open && slot < v.Close
}

// Fits returns true if [start, start+span) lies within opening hours
func (v *Venue) Fits(start timegrid.Slot, span timegrid.Span) bool {
	return span > 0 && start >= v.Open && start.Add(span) <= v.Close
}

// SortedTables возвращает копию списка столиков по возрастанию
func (v *Venue) SortedTables() []TableID {
	tables := make([]TableID, len(v.Tables))
	copy(tables, v.Tables)
	sort.Slice(tables, func(i, j int) bool { return tables[i] < tables[j] })
	return tables
}
