package get_venue

import (
	"github.com/m04kA/SMC-TableBooking/internal/availability"
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// VenueResponse правила бронирования заведения
type VenueResponse struct {
	Tables           []domain.TableID `json:"tables"`
	OpenTime         string           `json:"openTime"`
	CloseTime        string           `json:"closeTime"`
	SlotMinutes      int              `json:"slotMinutes"`
	MaxPeople        int              `json:"maxPeople"`
	MaxDurationHours float64          `json:"maxDurationHours"`
	HorizonDays      int              `json:"horizonDays"`
	Window           *WindowResponse  `json:"window,omitempty"`
}

// WindowResponse окно опубликованного индекса [min, max)
type WindowResponse struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// FromVenue формирует ответ. Окно указывается, только если индекс уже построен.
func FromVenue(venue *domain.Venue, idx *availability.Index) *VenueResponse {
	resp := &VenueResponse{
		Tables:           venue.SortedTables(),
		OpenTime:         venue.Open.String(),
		CloseTime:        closeTime(venue.Close),
		SlotMinutes:      timegrid.MinutesPerSlot,
		MaxPeople:        venue.MaxPeople,
		MaxDurationHours: venue.MaxDuration.Hours(),
		HorizonDays:      venue.HorizonDays,
	}

	if idx != nil {
		window := idx.Window()
		resp.Window = &WindowResponse{Min: window.Min.Key(), Max: window.Max.Key()}
	}
	return resp
}

// closeTime полночь пишется как 24:00
func closeTime(slot timegrid.Slot) string {
	if slot == timegrid.SlotsPerDay {
		return "24:00"
	}
	return slot.String()
}
