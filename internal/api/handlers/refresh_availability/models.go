package refresh_availability

import (
	"time"

	refreshAvailability "github.com/m04kA/SMC-TableBooking/internal/usecase/refresh_availability"
)

// WindowResponse окно индекса [min, max)
type WindowResponse struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// StatsResponse итоги сборки индекса
type StatsResponse struct {
	Bookings           int `json:"bookings"`
	Events             int `json:"events"`
	Recurring          int `json:"recurring"`
	Unsupported        int `json:"unsupported"`
	SkippedMalformed   int `json:"skippedMalformed"`
	SkippedInvalidTime int `json:"skippedInvalidTime"`
	Occupations        int `json:"occupations"`
}

// RefreshResponse HTTP response model
type RefreshResponse struct {
	SnapshotID string         `json:"snapshotId"`
	Window     WindowResponse `json:"window"`
	BuiltAt    string         `json:"builtAt"`
	FromCache  bool           `json:"fromCache"`
	Stats      StatsResponse  `json:"stats"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *refreshAvailability.Response) *RefreshResponse {
	return &RefreshResponse{
		SnapshotID: resp.SnapshotID,
		Window: WindowResponse{
			Min: resp.Window.Min.Key(),
			Max: resp.Window.Max.Key(),
		},
		BuiltAt:   resp.BuiltAt.UTC().Format(time.RFC3339),
		FromCache: resp.FromCache,
		Stats: StatsResponse{
			Bookings:           resp.Stats.Bookings,
			Events:             resp.Stats.Events,
			Recurring:          resp.Stats.Recurring,
			Unsupported:        resp.Stats.Unsupported,
			SkippedMalformed:   resp.Stats.SkippedMalformed,
			SkippedInvalidTime: resp.Stats.SkippedInvalidTime,
			Occupations:        resp.Stats.Occupations,
		},
	}
}
