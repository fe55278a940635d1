package get_venue

import "github.com/m04kA/SMC-TableBooking/internal/availability"

type IndexReader interface {
	Current() *availability.Index
}

type Logger interface {
	Info(format string, v ...interface{})
}
