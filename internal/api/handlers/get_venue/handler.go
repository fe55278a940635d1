package get_venue

import (
	"net/http"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TableBooking/internal/domain"
)

type Handler struct {
	venue  domain.Venue
	index  IndexReader
	logger Logger
}

func NewHandler(venue domain.Venue, index IndexReader, logger Logger) *Handler {
	return &Handler{
		venue:  venue,
		index:  index,
		logger: logger,
	}
}

// Handle GET /api/v1/venue
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	response := FromVenue(&h.venue, h.index.Current())

	h.logger.Info("GET /venue - Venue retrieved: tables=%d", len(response.Tables))
	handlers.RespondJSON(w, http.StatusOK, response)
}
