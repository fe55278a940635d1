package availability

import (
	"sync/atomic"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// Store держит текущий опубликованный индекс и атомарно заменяет его новым.
// Читатели получают либо старый, либо новый снимок, но никогда не собираемый.
type Store struct {
	current atomic.Pointer[published]
	tickets atomic.Uint64
}

type published struct {
	ticket uint64
	index  *Index
}

func NewStore() *Store {
	return &Store{}
}

// Begin выдаёт билет на сборку. Билет нужно получить до загрузки данных.
func (s *Store) Begin() uint64 {
	return s.tickets.Add(1)
}

// Publish публикует индекс, если его билет новее уже опубликованного.
// Сборка, начатая раньше опубликованной, отбрасывается: выигрывает последняя начатая.
func (s *Store) Publish(ticket uint64, idx *Index) bool {
	next := &published{ticket: ticket, index: idx}
	for {
		cur := s.current.Load()
		if cur != nil && cur.ticket >= ticket {
			return false
		}
		if s.current.CompareAndSwap(cur, next) {
			return true
		}
	}
}

// Current текущий индекс или nil, если ещё ничего не опубликовано
func (s *Store) Current() *Index {
	cur := s.current.Load()
	if cur == nil {
		return nil
	}
	return cur.index
}

// IsAvailable переводит время через timegrid и проверяет столик по текущему индексу
func (s *Store) IsAvailable(date timegrid.Date, hour string, table domain.TableID) (bool, error) {
	slot, err := timegrid.Parse(hour)
	if err != nil {
		return false, err
	}
	return s.Current().IsAvailable(date, slot, table), nil
}

// FreeTables переводит время через timegrid и возвращает свободные из all столики
func (s *Store) FreeTables(date timegrid.Date, hour string, all TableSet) (TableSet, error) {
	slot, err := timegrid.Parse(hour)
	if err != nil {
		return nil, err
	}
	return s.Current().FreeTables(date, slot, all), nil
}
