package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidTime возвращается, когда время начала не разобрано или не кратно получасу
	ErrInvalidTime = errors.New("create_booking: invalid start time")

	// ErrInvalidDuration возвращается, когда длительность не кратна получасу или вне допустимых границ
	ErrInvalidDuration = errors.New("create_booking: invalid duration")

	// ErrInvalidPeople возвращается, когда число гостей вне допустимых границ
	ErrInvalidPeople = errors.New("create_booking: invalid number of people")

	// ErrTableNotFound возвращается, когда столика нет в заведении
	ErrTableNotFound = errors.New("create_booking: table not found")

	// ErrOutsideOpeningHours возвращается, когда бронирование выходит за часы работы
	ErrOutsideOpeningHours = errors.New("create_booking: booking is outside opening hours")

	// ErrDateOutsideWindow возвращается, когда дата вне окна бронирования
	ErrDateOutsideWindow = errors.New("create_booking: date is outside the booking window")

	// ErrTooLateToBook возвращается, когда время начала уже прошло
	ErrTooLateToBook = errors.New("create_booking: start time has already passed")

	// ErrTableOccupied возвращается, когда столик занят хотя бы в один слот бронирования
	ErrTableOccupied = errors.New("create_booking: table is occupied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
