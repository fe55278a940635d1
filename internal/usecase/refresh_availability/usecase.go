package refresh_availability

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-TableBooking/internal/availability"
	"github.com/m04kA/SMC-TableBooking/pkg/metrics"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// Имена источников для метрик и логов
const (
	feedBookings  = "bookings"
	feedEvents    = "events"
	feedRecurring = "recurring_events"
)

// Причины пропуска записей для метрик
const (
	skipMalformed   = "malformed"
	skipInvalidTime = "invalid_time"
	skipUnsupported = "unsupported_recurrence"
)

// UseCase перестраивает индекс занятости из трёх источников и атомарно публикует его
type UseCase struct {
	bookings     BookingFeed
	events       EventFeed
	cache        SnapshotCache
	store        IndexStore
	metrics      Metrics
	horizonDays  int
	timeProvider TimeProvider
	logger       Logger

	// незавершённые сборки в обход кэша
	bypassing atomic.Int32
}

// NewUseCase создает новый экземпляр use case. cache может быть nil.
func NewUseCase(
	bookings BookingFeed,
	events EventFeed,
	cache SnapshotCache,
	store IndexStore,
	metrics Metrics,
	horizonDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookings:     bookings,
		events:       events,
		cache:        cache,
		store:        store,
		metrics:      metrics,
		horizonDays:  horizonDays,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute загружает источники, строит индекс и публикует его.
// Билет берётся до загрузки: сборка, начатая раньше уже опубликованной, отбрасывается.
// Пока идёт сборка в обход кэша, остальные сборки тоже читают источники:
// снимок в кэше может не содержать только что сохранённое бронирование.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	started := time.Now()
	if req.BypassCache {
		uc.bypassing.Add(1)
		defer uc.bypassing.Add(-1)
	}
	ticket := uc.store.Begin()

	window := availability.HorizonWindow(timegrid.DateOf(uc.timeProvider.Now()), uc.horizonDays)

	skipCache := req.BypassCache || uc.bypassing.Load() > 0
	input, fromCache, err := uc.load(ctx, window, skipCache)
	if err != nil {
		uc.metrics.ObserveIndexBuild(metrics.BuildFailed, time.Since(started))
		uc.logger.Error("RefreshAvailability: window=%s: %v", window, err)
		return nil, err
	}

	if !fromCache && uc.cache != nil {
		if err := uc.cache.Set(ctx, window, input); err != nil {
			uc.metrics.IncSnapshotCache(metrics.CacheError)
			uc.logger.Warn("RefreshAvailability: failed to cache snapshot: %v", err)
		}
	}

	idx := availability.Build(*input, window, uc.logger)
	stats := idx.Stats()

	if !uc.store.Publish(ticket, idx) {
		uc.metrics.ObserveIndexBuild(metrics.BuildDiscarded, time.Since(started))
		uc.logger.Warn("RefreshAvailability: snapshot=%s discarded, a newer build was started", idx.ID())
		return nil, ErrSuperseded
	}

	uc.metrics.ObserveIndexBuild(metrics.BuildPublished, time.Since(started))
	uc.metrics.SetIndexOccupations(stats.Occupations)
	uc.metrics.AddSkippedRecords(skipMalformed, stats.SkippedMalformed)
	uc.metrics.AddSkippedRecords(skipInvalidTime, stats.SkippedInvalidTime)
	uc.metrics.AddSkippedRecords(skipUnsupported, stats.Unsupported)

	uc.logger.Info("RefreshAvailability: published snapshot=%s window=%s from_cache=%t in %s",
		idx.ID(), window, fromCache, time.Since(started))

	return &Response{
		SnapshotID: idx.ID().String(),
		Window:     window,
		BuiltAt:    idx.BuiltAt(),
		Stats:      stats,
		FromCache:  fromCache,
	}, nil
}

// Run обновляет индекс сразу и затем с периодом interval до отмены контекста
func (uc *UseCase) Run(ctx context.Context, interval time.Duration) {
	uc.refreshQuietly(ctx)

	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			uc.logger.Info("RefreshAvailability: periodic refresh stopped")
			return
		case <-ticker.C:
			uc.refreshQuietly(ctx)
		}
	}
}

func (uc *UseCase) refreshQuietly(ctx context.Context) {
	if _, err := uc.Execute(ctx, &Request{}); err != nil && ctx.Err() == nil {
		uc.logger.Warn("RefreshAvailability: periodic refresh failed: %v", err)
	}
}

// load берёт снимок из кэша или загружает три источника параллельно.
// Индекс строится только после того, как загружены все три.
func (uc *UseCase) load(ctx context.Context, window availability.Window, bypassCache bool) (*availability.Input, bool, error) {
	if uc.cache != nil && !bypassCache {
		input, found, err := uc.cache.Get(ctx, window)
		switch {
		case err != nil:
			uc.metrics.IncSnapshotCache(metrics.CacheError)
			uc.logger.Warn("RefreshAvailability: snapshot cache unavailable, fetching feeds: %v", err)
		case found:
			uc.metrics.IncSnapshotCache(metrics.CacheHit)
			return input, true, nil
		default:
			uc.metrics.IncSnapshotCache(metrics.CacheMiss)
		}
	}

	input := &availability.Input{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		started := time.Now()
		records, err := uc.bookings.ListByDateRange(gctx, window.Min, window.Max)
		uc.metrics.ObserveFeedFetch(feedBookings, err, time.Since(started))
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrFetchFeed, feedBookings, err)
		}
		input.Bookings = records
		return nil
	})

	g.Go(func() error {
		started := time.Now()
		records, err := uc.events.ListOneOff(gctx, window.Min, window.Max)
		uc.metrics.ObserveFeedFetch(feedEvents, err, time.Since(started))
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrFetchFeed, feedEvents, err)
		}
		input.Events = records
		return nil
	})

	g.Go(func() error {
		started := time.Now()
		records, err := uc.events.ListRecurring(gctx, window.Max)
		uc.metrics.ObserveFeedFetch(feedRecurring, err, time.Since(started))
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrFetchFeed, feedRecurring, err)
		}
		input.Recurring = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	return input, false, nil
}
