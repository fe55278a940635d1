package refresh_availability

import (
	"context"

	refreshAvailability "github.com/m04kA/SMC-TableBooking/internal/usecase/refresh_availability"
)

type RefreshAvailabilityUseCase interface {
	Execute(ctx context.Context, req *refreshAvailability.Request) (*refreshAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
