package bookingapi

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("bookingapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("bookingapi client: invalid response")

	// ErrUnavailable возвращается, когда сервис недоступен (сеть, 5xx)
	ErrUnavailable = errors.New("bookingapi client: service unavailable")
)
