package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/availability"
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/internal/integrations/broker"
	"github.com/m04kA/SMC-TableBooking/internal/usecase/refresh_availability"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// BookingRepository хранилище бронирований (postgres или внешний API)
type BookingRepository interface {
	ListByTableAndDate(ctx context.Context, table domain.TableID, date timegrid.Date) ([]domain.ReservationRecord, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// IndexReader доступ к опубликованному индексу
type IndexReader interface {
	Current() *availability.Index
}

// Refresher перестраивает индекс после сохранения бронирования
type Refresher interface {
	Execute(ctx context.Context, req *refresh_availability.Request) (*refresh_availability.Response, error)
}

// EventPublisher публикует событие о новом бронировании
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, event broker.BookingCreatedEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
