package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInvalidDuration возвращается, когда длительность не кратна 30 минутам или вне допустимых пределов
	ErrInvalidDuration = errors.New("get_available_slots: invalid duration")

	// ErrDateOutsideWindow возвращается, когда дата вне окна бронирования
	ErrDateOutsideWindow = errors.New("get_available_slots: date is outside the booking window")

	// ErrTableNotFound возвращается, когда столика нет в заведении
	ErrTableNotFound = errors.New("get_available_slots: table not found")
)
