package get_free_tables

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
	getFreeTables "github.com/m04kA/SMC-TableBooking/internal/usecase/get_free_tables"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

const (
	msgMissingDate         = "дата обязательна"
	msgMissingHour         = "время обязательно"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidHour         = "некорректный формат времени, ожидается HH:MM или число часов"
	msgNotAligned          = "время должно быть кратно 30 минутам"
	msgDateOutsideWindow   = "дата вне окна бронирования"
	msgOutsideOpeningHours = "заведение закрыто в это время"
)

type Handler struct {
	useCase GetFreeTablesUseCase
	logger  Logger
}

func NewHandler(useCase GetFreeTablesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (required, YYYY-MM-DD), hour (required, HH:MM или 13.5)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	hourStr := r.URL.Query().Get("hour")
	if hourStr == "" {
		h.logger.Warn("GET /availability - Missing hour")
		handlers.RespondBadRequest(w, msgMissingHour)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr, hourStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid query: %v", err)
		handlers.RespondBadRequest(w, parseErrorMessage(err))
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getFreeTables.ErrDateOutsideWindow):
			h.logger.Warn("GET /availability - Date outside window: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateOutsideWindow)

		case errors.Is(err, getFreeTables.ErrOutsideOpeningHours):
			h.logger.Warn("GET /availability - Outside opening hours: hour=%s", hourStr)
			handlers.RespondBadRequest(w, msgOutsideOpeningHours)

		default:
			h.logger.Error("GET /availability - Failed to get free tables: date=%s, hour=%s, error=%v",
				dateStr, hourStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /availability - Free tables retrieved: date=%s, hour=%s, free=%d/%d",
		dateStr, hourStr, len(result.Free), len(result.Tables))
	handlers.RespondJSON(w, http.StatusOK, response)
}

func parseErrorMessage(err error) string {
	switch {
	case errors.Is(err, errInvalidDate):
		return msgInvalidDate
	case errors.Is(err, timegrid.ErrNotAligned):
		return msgNotAligned
	default:
		return msgInvalidHour
	}
}
