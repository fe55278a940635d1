package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-TableBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidInput        = "не заполнены обязательные поля бронирования"
	msgInvalidTime         = "некорректное время начала, ожидается HH:MM с шагом 30 минут"
	msgInvalidDuration     = "некорректная длительность бронирования"
	msgInvalidPeople       = "некорректное количество гостей"
	msgTableNotFound       = "столик не найден"
	msgOutsideOpeningHours = "бронирование выходит за часы работы заведения"
	msgDateOutsideWindow   = "дата вне окна бронирования"
	msgTooLateToBook       = "слишком поздно для бронирования на это время"
	msgTableOccupied       = "столик занят в выбранное время"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrTableOccupied):
			h.logger.Warn("POST /bookings - Table occupied: table=%d, date=%s, hour=%s", req.Table, req.Date, req.Hour)
			handlers.RespondConflict(w, msgTableOccupied)

		case errors.Is(err, createBooking.ErrTableNotFound):
			h.logger.Warn("POST /bookings - Table not found: table=%d", req.Table)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrInvalidTime):
			h.logger.Warn("POST /bookings - Invalid time: hour=%s", req.Hour)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, createBooking.ErrInvalidDuration):
			h.logger.Warn("POST /bookings - Invalid duration: duration=%v", req.Duration)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, createBooking.ErrInvalidPeople):
			h.logger.Warn("POST /bookings - Invalid people: people=%d", req.People)
			handlers.RespondBadRequest(w, msgInvalidPeople)

		case errors.Is(err, createBooking.ErrOutsideOpeningHours):
			h.logger.Warn("POST /bookings - Outside opening hours: hour=%s, duration=%v", req.Hour, req.Duration)
			handlers.RespondBadRequest(w, msgOutsideOpeningHours)

		case errors.Is(err, createBooking.ErrDateOutsideWindow):
			h.logger.Warn("POST /bookings - Date outside window: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateOutsideWindow)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: date=%s, hour=%s", req.Date, req.Hour)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: table=%d, date=%s, error=%v",
				req.Table, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, table=%d, date=%s, hour=%s",
		result.ID, result.Table, response.Date, response.Hour)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
