package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-TableBooking/internal/usecase/get_available_slots"
)

const (
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration   = "некорректная длительность, ожидается число часов с шагом 0.5"
	msgInvalidTableID    = "некорректный номер столика"
	msgTableNotFound     = "столик не найден"
	msgDateOutsideWindow = "дата вне окна бронирования"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots
// Query params: date (required, YYYY-MM-DD), duration (часы, по умолчанию 0.5), table (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr, query.Get("duration"), query.Get("table"))
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid query: %v", err)
		switch {
		case errors.Is(err, errInvalidDuration):
			handlers.RespondBadRequest(w, msgInvalidDuration)
		case errors.Is(err, errInvalidTableID):
			handlers.RespondBadRequest(w, msgInvalidTableID)
		default:
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDuration):
			h.logger.Warn("GET /available-slots - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getAvailableSlots.ErrTableNotFound):
			h.logger.Warn("GET /available-slots - Table not found: table=%s", query.Get("table"))
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, getAvailableSlots.ErrDateOutsideWindow):
			h.logger.Warn("GET /available-slots - Date outside window: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateOutsideWindow)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /available-slots - Slots retrieved successfully: date=%s, slots_count=%d",
		dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
