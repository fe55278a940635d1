package availability

import (
	"sort"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
)

// TableSet множество столиков. Нулевое значение (nil) читается как пустое множество.
type TableSet map[domain.TableID]struct{}

// NewTableSet создаёт множество из перечисленных столиков
func NewTableSet(ids ...domain.TableID) TableSet {
	set := make(TableSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s TableSet) Has(id domain.TableID) bool {
	_, ok := s[id]
	return ok
}

func (s TableSet) Add(id domain.TableID) {
	s[id] = struct{}{}
}

func (s TableSet) Len() int {
	return len(s)
}

// Difference возвращает новое множество s \ other
func (s TableSet) Difference(other TableSet) TableSet {
	result := make(TableSet, len(s))
	for id := range s {
		if !other.Has(id) {
			result[id] = struct{}{}
		}
	}
	return result
}

// Sorted возвращает столики по возрастанию
func (s TableSet) Sorted() []domain.TableID {
	ids := make([]domain.TableID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s TableSet) clone() TableSet {
	result := make(TableSet, len(s))
	for id := range s {
		result[id] = struct{}{}
	}
	return result
}
