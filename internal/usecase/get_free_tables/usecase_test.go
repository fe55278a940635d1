package get_free_tables

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBooking/internal/availability"
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func testVenue() domain.Venue {
	return domain.Venue{
		Tables:      []domain.TableID{3, 1, 2},
		Open:        24,
		Close:       48,
		MaxPeople:   9,
		MaxDuration: 18,
		HorizonDays: 14,
	}
}

func mustDate(t *testing.T, value string) timegrid.Date {
	t.Helper()
	date, err := timegrid.ParseDate(value)
	require.NoError(t, err)
	return date
}

func publishedStore(t *testing.T, input availability.Input) *availability.Store {
	t.Helper()
	window := availability.Window{Min: mustDate(t, "2024-03-01"), Max: mustDate(t, "2024-03-15")}

	store := availability.NewStore()
	require.True(t, store.Publish(store.Begin(), availability.Build(input, window, nopLogger{})))
	return store
}

func newUseCase(index IndexReader) *UseCase {
	uc := NewUseCase(index, testVenue(), nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_ReportsPerTableAvailability(t *testing.T) {
	store := publishedStore(t, availability.Input{
		Bookings:  []domain.ReservationRecord{{Date: "2024-03-01", Hour: "12:00", Duration: 1, Table: 3}},
		Recurring: []domain.RecurringRecord{{Repeat: "daily", Hour: "12:00", Duration: 0.5, Table: 3}},
	})

	resp, err := newUseCase(store).Execute(context.Background(), &Request{Date: mustDate(t, "2024-03-01"), Slot: 24})
	require.NoError(t, err)

	assert.Equal(t, []TableAvailability{
		{Table: 1, Available: true},
		{Table: 2, Available: true},
		{Table: 3, Available: false},
	}, resp.Tables)
	assert.Equal(t, []domain.TableID{1, 2}, resp.Free)
	assert.NotEmpty(t, resp.SnapshotID)
}

func TestExecute_SingleTable(t *testing.T) {
	store := publishedStore(t, availability.Input{
		Events: []domain.ReservationRecord{{Date: "2024-03-02", Hour: "19:00", Duration: 2, Table: 2}},
	})
	table := domain.TableID(2)

	resp, err := newUseCase(store).Execute(context.Background(), &Request{Date: mustDate(t, "2024-03-02"), Slot: 39, Table: &table})
	require.NoError(t, err)

	assert.Equal(t, []TableAvailability{{Table: 2, Available: false}}, resp.Tables)
	assert.Empty(t, resp.Free)
}

func TestExecute_FailsOpenWithoutIndex(t *testing.T) {
	resp, err := newUseCase(availability.NewStore()).Execute(context.Background(), &Request{Date: mustDate(t, "2024-03-01"), Slot: 30})
	require.NoError(t, err)

	assert.Equal(t, []domain.TableID{1, 2, 3}, resp.Free)
	assert.Empty(t, resp.SnapshotID)
}

func TestExecute_Validation(t *testing.T) {
	store := publishedStore(t, availability.Input{})
	unknown := domain.TableID(99)

	testCases := []struct {
		name     string
		req      *Request
		expected error
	}{
		{name: "before opening", req: &Request{Date: mustDate(t, "2024-03-01"), Slot: 23}, expected: ErrOutsideOpeningHours},
		{name: "date before window", req: &Request{Date: mustDate(t, "2024-02-29"), Slot: 24}, expected: ErrDateOutsideWindow},
		{name: "window end excluded", req: &Request{Date: mustDate(t, "2024-03-15"), Slot: 24}, expected: ErrDateOutsideWindow},
		{name: "unknown table", req: &Request{Date: mustDate(t, "2024-03-01"), Slot: 24, Table: &unknown}, expected: ErrTableNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newUseCase(store).Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}
