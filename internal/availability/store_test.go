package availability

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

func TestStore_FailsOpenBeforeFirstPublish(t *testing.T) {
	store := NewStore()
	date := mustDate(t, "2024-03-01")

	assert.Nil(t, store.Current())

	available, err := store.IsAvailable(date, "12:00", 1)
	require.NoError(t, err)
	assert.True(t, available)

	all := NewTableSet(1, 2, 3)
	free, err := store.FreeTables(date, "12:00", all)
	require.NoError(t, err)
	assert.Equal(t, all, free)
}

func TestStore_FailsOpenForUnknownSlot(t *testing.T) {
	store := NewStore()
	idx := Build(Input{
		Bookings: []domain.ReservationRecord{{Date: "2024-03-01", Hour: "12:00", Duration: 1, Table: 1}},
	}, mustWindow(t, "2024-03-01", "2024-03-02"), &recordingLogger{})
	require.True(t, store.Publish(store.Begin(), idx))

	available, err := store.IsAvailable(mustDate(t, "2024-03-01"), "20:00", 1)
	require.NoError(t, err)
	assert.True(t, available)

	available, err = store.IsAvailable(mustDate(t, "2024-03-01"), "12.5", 1)
	require.NoError(t, err)
	assert.False(t, available)
}

func TestStore_LastStartedBuildWins(t *testing.T) {
	store := NewStore()
	window := mustWindow(t, "2024-03-01", "2024-03-02")

	staleTicket := store.Begin()
	freshTicket := store.Begin()

	fresh := Build(Input{}, window, &recordingLogger{})
	stale := Build(Input{}, window, &recordingLogger{})

	assert.True(t, store.Publish(freshTicket, fresh))
	assert.False(t, store.Publish(staleTicket, stale))
	assert.Same(t, fresh, store.Current())
}

func TestStore_PublishesInOrder(t *testing.T) {
	store := NewStore()
	window := mustWindow(t, "2024-03-01", "2024-03-02")

	first := Build(Input{}, window, &recordingLogger{})
	require.True(t, store.Publish(store.Begin(), first))
	assert.Same(t, first, store.Current())

	second := Build(Input{}, window, &recordingLogger{})
	require.True(t, store.Publish(store.Begin(), second))
	assert.Same(t, second, store.Current())
}

func TestStore_InvalidHour(t *testing.T) {
	store := NewStore()

	_, err := store.IsAvailable(mustDate(t, "2024-03-01"), "12:15", 1)
	assert.ErrorIs(t, err, timegrid.ErrNotAligned)

	_, err = store.FreeTables(mustDate(t, "2024-03-01"), "half past", NewTableSet(1))
	assert.ErrorIs(t, err, timegrid.ErrInvalidTimeFormat)
}

func TestStore_ConcurrentReadsDuringRebuilds(t *testing.T) {
	store := NewStore()
	window := mustWindow(t, "2024-03-01", "2024-03-02")
	date := mustDate(t, "2024-03-01")
	slot := mustSlot(t, 12)
	all := NewTableSet(1, 2, 3)

	occupied := Input{Bookings: []domain.ReservationRecord{{Date: "2024-03-01", Hour: "12:00", Duration: 1, Table: 3}}}

	var wg sync.WaitGroup
	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				free := store.Current().FreeTables(date, slot, all)
				// снимок либо ещё пуст, либо полностью собран
				if free.Len() != 3 && free.Len() != 2 {
					t.Errorf("unexpected free tables: %v", free.Sorted())
					return
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		store.Publish(store.Begin(), Build(occupied, window, &recordingLogger{}))
	}
	wg.Wait()

	assert.Equal(t, []domain.TableID{1, 2}, store.Current().FreeTables(date, slot, all).Sorted())
}
