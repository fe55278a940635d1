package get_free_tables

import "errors"

var (
	// ErrDateOutsideWindow возвращается, когда дата вне окна бронирования
	ErrDateOutsideWindow = errors.New("get_free_tables: date is outside the booking window")

	// ErrOutsideOpeningHours возвращается, когда время вне часов работы заведения
	ErrOutsideOpeningHours = errors.New("get_free_tables: hour is outside opening hours")

	// ErrTableNotFound возвращается, когда столика нет в заведении
	ErrTableNotFound = errors.New("get_free_tables: table not found")
)
