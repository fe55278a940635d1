package bookingapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustDate(t *testing.T, value string) timegrid.Date {
	t.Helper()
	date, err := timegrid.ParseDate(value)
	require.NoError(t, err)
	return date
}

func TestClient_ListByDateRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bookings", r.URL.Path)
		assert.Equal(t, "2024-03-01", r.URL.Query().Get("date_gte"))
		assert.Equal(t, "2024-03-14", r.URL.Query().Get("date_lte"))

		_, _ = w.Write([]byte(`[
			{"id": 1, "date": "2024-03-01", "hour": 12.5, "duration": 1.5, "table": 3, "ppl": 2, "phone": "1", "address": "a"},
			{"id": 2, "date": "2024-03-02", "hour": "18:00", "duration": 1, "table": 4}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nopLogger{})
	records, err := client.ListByDateRange(context.Background(), mustDate(t, "2024-03-01"), mustDate(t, "2024-03-15"))
	require.NoError(t, err)

	assert.Equal(t, []domain.ReservationRecord{
		{Date: "2024-03-01", Hour: "12.5", Duration: 1.5, Table: 3},
		{Date: "2024-03-02", Hour: "18:00", Duration: 1, Table: 4},
	}, records)
}

func TestClient_ListOneOffAndRecurring(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events", r.URL.Path)
		query := r.URL.Query()

		switch {
		case query.Get("repeat") == "false":
			_, _ = w.Write([]byte(`[{"date": "2024-03-03", "hour": 19, "duration": 3, "table": 7, "repeat": false}]`))
		case query.Get("repeat_ne") == "false":
			assert.Equal(t, "2024-03-14", query.Get("date_lte"))
			_, _ = w.Write([]byte(`[
				{"hour": 12, "duration": 0.5, "table": 1, "repeat": "daily"},
				{"hour": 13, "duration": 1, "table": 2, "repeat": "weekly"}
			]`))
		default:
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", time.Second, nopLogger{})

	oneOff, err := client.ListOneOff(context.Background(), mustDate(t, "2024-03-01"), mustDate(t, "2024-03-15"))
	require.NoError(t, err)
	assert.Equal(t, []domain.ReservationRecord{{Date: "2024-03-03", Hour: "19", Duration: 3, Table: 7}}, oneOff)

	recurring, err := client.ListRecurring(context.Background(), mustDate(t, "2024-03-15"))
	require.NoError(t, err)
	require.Len(t, recurring, 2)
	assert.Equal(t, domain.RepeatDaily, recurring[0].Kind())
	assert.Equal(t, domain.RepeatUnsupported, recurring[1].Kind())
}

func TestClient_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bookings", r.URL.Path)

		var payload map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "2024-03-01", payload["date"])
		assert.Equal(t, "12:30", payload["hour"])
		assert.Equal(t, 1.5, payload["duration"])
		assert.Equal(t, 3.0, payload["table"])
		assert.Equal(t, 2.0, payload["ppl"])

		payload["id"] = 42
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	booking := &domain.Booking{
		Date:     mustDate(t, "2024-03-01"),
		Start:    25,
		Duration: 3,
		Table:    3,
		People:   2,
		Phone:    "+79990000000",
		Address:  "Main st. 1",
	}

	created, err := NewClient(server.URL, time.Second, nopLogger{}).Create(context.Background(), booking)
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
}

func TestClient_ErrorStatuses(t *testing.T) {
	testCases := []struct {
		name     string
		status   int
		body     string
		expected error
	}{
		{name: "server error", status: http.StatusBadGateway, body: "upstream", expected: ErrUnavailable},
		{name: "client error", status: http.StatusNotFound, body: "missing", expected: ErrInvalidResponse},
		{name: "broken json", status: http.StatusOK, body: "{", expected: ErrInvalidResponse},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := NewClient(server.URL, time.Second, nopLogger{}).
				ListByDateRange(context.Background(), mustDate(t, "2024-03-01"), mustDate(t, "2024-03-02"))
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	_, err := NewClient(server.URL, time.Second, nopLogger{}).ListRecurring(context.Background(), mustDate(t, "2024-03-02"))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRepeat_Unmarshal(t *testing.T) {
	testCases := []struct {
		raw      string
		expected Repeat
	}{
		{raw: `false`, expected: ""},
		{raw: `null`, expected: ""},
		{raw: `"daily"`, expected: "daily"},
		{raw: `true`, expected: "true"},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			var r Repeat
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &r))
			assert.Equal(t, tc.expected, r)
		})
	}

	var r Repeat
	assert.Error(t, json.Unmarshal([]byte(`42`), &r))
}
