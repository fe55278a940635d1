package health

import (
	"context"

	"github.com/m04kA/SMC-TableBooking/internal/availability"
)

type IndexReader interface {
	Current() *availability.Index
}

// Pinger проверка хранилища, может отсутствовать
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}
