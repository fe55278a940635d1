package get_table_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
	getFreeTables "github.com/m04kA/SMC-TableBooking/internal/usecase/get_free_tables"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

const (
	msgInvalidTableID      = "некорректный номер столика"
	msgMissingDate         = "дата обязательна"
	msgMissingHour         = "время обязательно"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidHour         = "некорректный формат времени, ожидается HH:MM или число часов"
	msgNotAligned          = "время должно быть кратно 30 минутам"
	msgTableNotFound       = "столик не найден"
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

// Handle GET /api/v1/tables/{tableId}/availability
// Query params: date (required, YYYY-MM-DD), hour (required, HH:MM или 13.5)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tableIDStr := mux.Vars(r)["tableId"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /tables/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	hourStr := r.URL.Query().Get("hour")
	if hourStr == "" {
		h.logger.Warn("GET /tables/{id}/availability - Missing hour")
		handlers.RespondBadRequest(w, msgMissingHour)
		return
	}

	useCaseReq, err := ToUseCaseRequest(tableIDStr, dateStr, hourStr)
	if err != nil {
		h.logger.Warn("GET /tables/{id}/availability - Invalid request: %v", err)
		handlers.RespondBadRequest(w, parseErrorMessage(err))
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getFreeTables.ErrTableNotFound):
			h.logger.Warn("GET /tables/{id}/availability - Table not found: table_id=%s", tableIDStr)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, getFreeTables.ErrDateOutsideWindow):
			h.logger.Warn("GET /tables/{id}/availability - Date outside window: table_id=%s, date=%s", tableIDStr, dateStr)
			handlers.RespondBadRequest(w, msgDateOutsideWindow)

		case errors.Is(err, getFreeTables.ErrOutsideOpeningHours):
			h.logger.Warn("GET /tables/{id}/availability - Outside opening hours: table_id=%s, hour=%s", tableIDStr, hourStr)
			handlers.RespondBadRequest(w, msgOutsideOpeningHours)

		default:
			h.logger.Error("GET /tables/{id}/availability - Failed to check table: table_id=%s, error=%v", tableIDStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(*useCaseReq.Table, result)

	h.logger.Info("GET /tables/{id}/availability - Table checked: table_id=%d, date=%s, hour=%s, available=%t",
		response.Table, dateStr, hourStr, response.Available)
	handlers.RespondJSON(w, http.StatusOK, response)
}

func parseErrorMessage(err error) string {
	switch {
	case errors.Is(err, errInvalidTableID):
		return msgInvalidTableID
	case errors.Is(err, errInvalidDate):
		return msgInvalidDate
	case errors.Is(err, timegrid.ErrNotAligned):
		return msgNotAligned
	default:
		return msgInvalidHour
	}
}
