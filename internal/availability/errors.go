package availability

import "errors"

var (
	// ErrMalformedRecord возвращается, когда у записи нет даты, столика или времени,
	// либо длительность не кратна получасу. Запись пропускается.
	ErrMalformedRecord = errors.New("availability: malformed record")

	// ErrUnsupportedRecurrence вид повторения не распознан. Запись не даёт занятости
	// и не считается ошибкой сборки.
	ErrUnsupportedRecurrence = errors.New("availability: unsupported recurrence")
)
