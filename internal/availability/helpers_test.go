package availability

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// recordingLogger запоминает предупреждения, чтобы тесты могли их проверить
type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Info(format string, v ...interface{}) {}

func (l *recordingLogger) Warn(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Error(format string, v ...interface{}) {}

func mustDate(t *testing.T, value string) timegrid.Date {
	t.Helper()
	date, err := timegrid.ParseDate(value)
	require.NoError(t, err)
	return date
}

func mustSlot(t *testing.T, hours float64) timegrid.Slot {
	t.Helper()
	slot, err := timegrid.FromHours(hours)
	require.NoError(t, err)
	return slot
}

func mustSpan(t *testing.T, hours float64) timegrid.Span {
	t.Helper()
	span, err := timegrid.SpanFromHours(hours)
	require.NoError(t, err)
	return span
}

func mustWindow(t *testing.T, from, to string) Window {
	t.Helper()
	return Window{Min: mustDate(t, from), Max: mustDate(t, to)}
}
