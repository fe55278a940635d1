package refresh_availability

import (
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/availability"
)

// Request параметры обновления
type Request struct {
	// BypassCache загрузить источники напрямую и перезаписать кэш
	BypassCache bool
}

// Response итог обновления
type Response struct {
	SnapshotID string
	Window     availability.Window
	BuiltAt    time.Time
	Stats      availability.BuildStats
	FromCache  bool
}
