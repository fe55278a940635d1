package refresh_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/availability"
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// BookingFeed источник бронирований
type BookingFeed interface {
	ListByDateRange(ctx context.Context, from, to timegrid.Date) ([]domain.ReservationRecord, error)
}

// EventFeed источник разовых и повторяющихся событий
type EventFeed interface {
	ListOneOff(ctx context.Context, from, to timegrid.Date) ([]domain.ReservationRecord, error)
	ListRecurring(ctx context.Context, to timegrid.Date) ([]domain.RecurringRecord, error)
}

// SnapshotCache кэш загруженных источников
type SnapshotCache interface {
	Get(ctx context.Context, window availability.Window) (*availability.Input, bool, error)
	Set(ctx context.Context, window availability.Window, input *availability.Input) error
}

// IndexStore хранилище опубликованного индекса
type IndexStore interface {
	Begin() uint64
	Publish(ticket uint64, idx *availability.Index) bool
}

// Metrics метрики обновления индекса
type Metrics interface {
	ObserveIndexBuild(result string, duration time.Duration)
	AddSkippedRecords(reason string, count int)
	SetIndexOccupations(count int)
	ObserveFeedFetch(feed string, err error, duration time.Duration)
	IncSnapshotCache(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
