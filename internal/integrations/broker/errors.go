package broker

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к брокеру
	ErrConnect = errors.New("broker: failed to connect")

	// ErrPublish возвращается, когда сообщение не удалось опубликовать
	ErrPublish = errors.New("broker: failed to publish message")

	// ErrInvalidMessage возвращается для сообщений, которые не удалось разобрать
	ErrInvalidMessage = errors.New("broker: invalid message")
)
