package refresh_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
	refreshAvailability "github.com/m04kA/SMC-TableBooking/internal/usecase/refresh_availability"
)

const (
	msgFeedsUnavailable = "источники бронирований недоступны, действует предыдущий снимок"
	msgSuperseded       = "обновление вытеснено более новым"
)

type Handler struct {
	useCase RefreshAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase RefreshAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability/refresh
// Перестраивает индекс в обход кэша снимков
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context(), &refreshAvailability.Request{BypassCache: true})
	if err != nil {
		switch {
		case errors.Is(err, refreshAvailability.ErrFetchFeed):
			h.logger.Warn("POST /availability/refresh - Feeds unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgFeedsUnavailable)

		case errors.Is(err, refreshAvailability.ErrSuperseded):
			h.logger.Warn("POST /availability/refresh - Build superseded")
			handlers.RespondConflict(w, msgSuperseded)

		default:
			h.logger.Error("POST /availability/refresh - Failed to refresh: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/refresh - Index rebuilt: snapshot=%s, occupations=%d",
		result.SnapshotID, result.Stats.Occupations)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
