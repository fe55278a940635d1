package snapshot

import "errors"

var (
	// ErrCacheRead возвращается, когда снимок не удалось прочитать из Redis
	ErrCacheRead = errors.New("snapshot.cache: failed to read snapshot")

	// ErrCacheWrite возвращается, когда снимок не удалось записать в Redis
	ErrCacheWrite = errors.New("snapshot.cache: failed to write snapshot")

	// ErrCorruptedSnapshot возвращается, когда в кэше лежит нечитаемое значение
	ErrCorruptedSnapshot = errors.New("snapshot.cache: corrupted snapshot")
)
