package broker

import (
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
)

// RoutingKeyBookingCreated ключ маршрутизации события создания бронирования
const RoutingKeyBookingCreated = "booking.created"

// BookingCreatedEvent публикуется после сохранения бронирования.
// Другие экземпляры сервиса по нему перестраивают индекс занятости.
type BookingCreatedEvent struct {
	BookingID int64          `json:"booking_id"`
	Date      string         `json:"date"`
	Hour      string         `json:"hour"`
	Duration  float64        `json:"duration"`
	Table     domain.TableID `json:"table"`
	People    int            `json:"people"`
	CreatedAt time.Time      `json:"created_at"`
	Source    string         `json:"source"` // экземпляр сервиса, опубликовавший событие
}

// NewBookingCreatedEvent собирает событие из бронирования
func NewBookingCreatedEvent(b *domain.Booking) BookingCreatedEvent {
	return BookingCreatedEvent{
		BookingID: b.ID,
		Date:      b.Date.Key(),
		Hour:      b.Start.String(),
		Duration:  b.Duration.Hours(),
		Table:     b.Table,
		People:    b.People,
		CreatedAt: b.CreatedAt.UTC(),
	}
}
