package availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// Методы чтения индекса. Все они допускают nil-индекс: пока снимок не построен,
// занятость неизвестна и всё считается свободным.

func (idx *Index) ID() uuid.UUID {
	if idx == nil {
		return uuid.Nil
	}
	return idx.id
}

func (idx *Index) Window() Window {
	if idx == nil {
		return Window{}
	}
	return idx.window
}

func (idx *Index) BuiltAt() time.Time {
	if idx == nil {
		return time.Time{}
	}
	return idx.builtAt
}

func (idx *Index) Stats() BuildStats {
	if idx == nil {
		return BuildStats{}
	}
	return idx.stats
}

// IsAvailable returns true if the table is not recorded at (date, slot)
func (idx *Index) IsAvailable(date timegrid.Date, slot timegrid.Slot, table domain.TableID) bool {
	if idx == nil {
		return true
	}
	return !idx.ledger.IsOccupied(date, slot, table)
}

// IsRangeAvailable returns true if the table is free on every slot of [start, start+span)
func (idx *Index) IsRangeAvailable(date timegrid.Date, start timegrid.Slot, span timegrid.Span, table domain.TableID) bool {
	for i := 0; i < int(span); i++ {
		slot := int(start) + i
		day := date.AddDays(slot / timegrid.SlotsPerDay)
		if !idx.IsAvailable(day, timegrid.Slot(slot%timegrid.SlotsPerDay), table) {
			return false
		}
	}
	return true
}

// FreeTables возвращает all без занятых в (date, slot) столиков.
// Если на этот момент ничего не записано, возвращается сам all.
func (idx *Index) FreeTables(date timegrid.Date, slot timegrid.Slot, all TableSet) TableSet {
	if idx == nil {
		return all
	}

	occupied := idx.ledger.occupied(date, slot)
	if len(occupied) == 0 {
		return all
	}
	return all.Difference(occupied)
}

// OccupiedTables занятые в (date, slot) столики
func (idx *Index) OccupiedTables(date timegrid.Date, slot timegrid.Slot) TableSet {
	if idx == nil {
		return TableSet{}
	}
	return idx.ledger.OccupiedTables(date, slot)
}
