package refresh_availability

import "errors"

var (
	// ErrFetchFeed возвращается, когда не удалось загрузить один из источников.
	// Ранее опубликованный индекс при этом остаётся в силе.
	ErrFetchFeed = errors.New("refresh_availability: failed to fetch feeds")

	// ErrSuperseded возвращается, когда за время сборки была начата более новая сборка
	ErrSuperseded = errors.New("refresh_availability: build superseded by a newer one")
)
