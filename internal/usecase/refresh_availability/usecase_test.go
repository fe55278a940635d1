package refresh_availability

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBooking/internal/availability"
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/metrics"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeFeeds struct {
	bookings  []domain.ReservationRecord
	events    []domain.ReservationRecord
	recurring []domain.RecurringRecord
	err       error
	calls     atomic.Int32

	mu      sync.Mutex
	windows [][2]timegrid.Date
}

func (f *fakeFeeds) ListByDateRange(_ context.Context, from, to timegrid.Date) ([]domain.ReservationRecord, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.windows = append(f.windows, [2]timegrid.Date{from, to})
	f.mu.Unlock()
	return f.bookings, nil
}

func (f *fakeFeeds) ListOneOff(context.Context, timegrid.Date, timegrid.Date) ([]domain.ReservationRecord, error) {
	f.calls.Add(1)
	return f.events, nil
}

func (f *fakeFeeds) ListRecurring(context.Context, timegrid.Date) ([]domain.RecurringRecord, error) {
	f.calls.Add(1)
	return f.recurring, f.err
}

type fakeCache struct {
	stored  map[string]*availability.Input
	getErr  error
	sets    int
	lastKey string
}

func newFakeCache() *fakeCache {
	return &fakeCache{stored: map[string]*availability.Input{}}
}

func (f *fakeCache) Get(_ context.Context, window availability.Window) (*availability.Input, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	input, ok := f.stored[window.String()]
	return input, ok, nil
}

func (f *fakeCache) Set(_ context.Context, window availability.Window, input *availability.Input) error {
	f.sets++
	f.lastKey = window.String()
	f.stored[window.String()] = input
	return nil
}

var march1 = time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)

func newUseCase(feeds *fakeFeeds, cache SnapshotCache, store *availability.Store) *UseCase {
	uc := NewUseCase(feeds, feeds, cache, store, metrics.New("test"), 14, nopLogger{})
	uc.timeProvider = fixedTime{now: march1}
	return uc
}

func TestExecute_BuildsAndPublishes(t *testing.T) {
	feeds := &fakeFeeds{
		bookings:  []domain.ReservationRecord{{Date: "2024-03-01", Hour: "12:00", Duration: 1, Table: 3}},
		recurring: []domain.RecurringRecord{{Repeat: "daily", Hour: "12:00", Duration: 0.5, Table: 3}},
	}
	store := availability.NewStore()

	resp, err := newUseCase(feeds, nil, store).Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, int32(3), feeds.calls.Load())
	assert.Equal(t, "2024-03-01", resp.Window.Min.Key())
	assert.Equal(t, "2024-03-15", resp.Window.Max.Key())
	assert.Equal(t, [][2]timegrid.Date{{resp.Window.Min, resp.Window.Max}}, feeds.windows)
	assert.Equal(t, 1, resp.Stats.Bookings)
	assert.Equal(t, 1, resp.Stats.Recurring)
	assert.False(t, resp.FromCache)

	idx := store.Current()
	require.NotNil(t, idx)
	assert.Equal(t, resp.SnapshotID, idx.ID().String())

	date, _ := timegrid.ParseDate("2024-03-05")
	assert.False(t, idx.IsAvailable(date, 24, 3))
	assert.True(t, idx.IsAvailable(date, 25, 3))
}

func TestExecute_FeedFailureKeepsPreviousIndex(t *testing.T) {
	feeds := &fakeFeeds{}
	store := availability.NewStore()
	uc := newUseCase(feeds, nil, store)

	_, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	previous := store.Current()

	feeds.err = errors.New("connection refused")
	_, err = uc.Execute(context.Background(), &Request{})

	assert.ErrorIs(t, err, ErrFetchFeed)
	assert.Same(t, previous, store.Current())
}

func TestExecute_UsesCache(t *testing.T) {
	feeds := &fakeFeeds{bookings: []domain.ReservationRecord{{Date: "2024-03-01", Hour: "12:00", Duration: 1, Table: 1}}}
	cache := newFakeCache()
	uc := newUseCase(feeds, cache, availability.NewStore())

	first, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, int32(3), feeds.calls.Load())

	second, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, 1, second.Stats.Bookings)
	assert.Equal(t, int32(3), feeds.calls.Load())

	third, err := uc.Execute(context.Background(), &Request{BypassCache: true})
	require.NoError(t, err)
	assert.False(t, third.FromCache)
	assert.Equal(t, 2, cache.sets)
	assert.Equal(t, int32(6), feeds.calls.Load())
}

func TestExecute_CacheFailureDegradesToFetch(t *testing.T) {
	feeds := &fakeFeeds{}
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")

	resp, err := newUseCase(feeds, cache, availability.NewStore()).Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.False(t, resp.FromCache)
	assert.Equal(t, int32(3), feeds.calls.Load())
}

type blockingStore struct {
	*availability.Store
	beforePublish func()
}

func (s *blockingStore) Publish(ticket uint64, idx *availability.Index) bool {
	s.beforePublish()
	return s.Store.Publish(ticket, idx)
}

func TestExecute_StaleBuildIsDiscarded(t *testing.T) {
	feeds := &fakeFeeds{}
	inner := availability.NewStore()

	// пока первая сборка не опубликована, стартует и публикуется вторая
	store := &blockingStore{Store: inner}
	uc := NewUseCase(feeds, feeds, nil, store, (*metrics.Metrics)(nil), 14, nopLogger{})
	uc.timeProvider = fixedTime{now: march1}

	var newer *Response
	store.beforePublish = func() {
		store.beforePublish = func() {}
		var err error
		newer, err = uc.Execute(context.Background(), &Request{})
		require.NoError(t, err)
	}

	_, err := uc.Execute(context.Background(), &Request{})

	assert.ErrorIs(t, err, ErrSuperseded)
	require.NotNil(t, newer)
	assert.Equal(t, newer.SnapshotID, inner.Current().ID().String())
}

func TestExecute_BuildDuringBypassSkipsStaleCache(t *testing.T) {
	feeds := &fakeFeeds{bookings: []domain.ReservationRecord{{Date: "2024-03-02", Hour: "12:00", Duration: 1, Table: 1}}}
	window := availability.HorizonWindow(timegrid.DateOf(march1), 14)
	cache := newFakeCache()
	cache.stored[window.String()] = &availability.Input{}

	inner := availability.NewStore()
	store := &blockingStore{Store: inner}
	uc := NewUseCase(feeds, feeds, cache, store, (*metrics.Metrics)(nil), 14, nopLogger{})
	uc.timeProvider = fixedTime{now: march1}

	// сборка в обход кэша ещё не опубликована, а периодическая уже стартовала
	var periodic *Response
	store.beforePublish = func() {
		store.beforePublish = func() {}
		var err error
		periodic, err = uc.Execute(context.Background(), &Request{})
		require.NoError(t, err)
	}

	_, err := uc.Execute(context.Background(), &Request{BypassCache: true})
	assert.ErrorIs(t, err, ErrSuperseded)

	require.NotNil(t, periodic)
	assert.False(t, periodic.FromCache)
	require.Len(t, cache.stored[window.String()].Bookings, 1)

	date, _ := timegrid.ParseDate("2024-03-02")
	assert.False(t, inner.Current().IsAvailable(date, 24, 1))
}

func TestExecute_SupersededBypassStillFillsCache(t *testing.T) {
	feeds := &fakeFeeds{bookings: []domain.ReservationRecord{{Date: "2024-03-02", Hour: "12:00", Duration: 1, Table: 1}}}
	cache := newFakeCache()
	store := &blockingStore{Store: availability.NewStore()}
	uc := NewUseCase(feeds, feeds, cache, store, (*metrics.Metrics)(nil), 14, nopLogger{})
	uc.timeProvider = fixedTime{now: march1}

	store.beforePublish = func() {
		store.beforePublish = func() {}
		window := availability.HorizonWindow(timegrid.DateOf(march1), 14)
		store.Store.Publish(store.Store.Begin(), availability.Build(availability.Input{}, window, nopLogger{}))
	}

	_, err := uc.Execute(context.Background(), &Request{BypassCache: true})

	assert.ErrorIs(t, err, ErrSuperseded)
	assert.Equal(t, 1, cache.sets)
	assert.Len(t, cache.stored[cache.lastKey].Bookings, 1)
}

func TestRun_StopsOnCancel(t *testing.T) {
	feeds := &fakeFeeds{}
	store := availability.NewStore()
	uc := newUseCase(feeds, nil, store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		uc.Run(ctx, time.Hour)
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.Current() != nil }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
