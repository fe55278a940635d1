package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-TableBooking/internal/usecase/get_available_slots"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	req *getAvailableSlots.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &getAvailableSlots.Response{
		Date:     req.Date,
		Duration: 3,
		Slots: []getAvailableSlots.Slot{
			{Start: 40, FreeTables: []domain.TableID{1, 3}, AvailableTables: 2, TotalTables: 3},
		},
	}, nil
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(uc, "/api/v1/available-slots?date=2024-03-02&duration=1.5&table=3")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.5, uc.req.Duration)
	require.NotNil(t, uc.req.Table)
	assert.Equal(t, domain.TableID(3), *uc.req.Table)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2024-03-02", body.Date)
	assert.Equal(t, 1.5, body.Duration)
	assert.Equal(t, []AvailableSlot{
		{StartTime: "20:00", FreeTables: []domain.TableID{1, 3}, AvailableTables: 2, TotalTables: 3},
	}, body.Slots)
}

func TestHandle_BadQuery(t *testing.T) {
	testCases := []struct {
		name    string
		target  string
		ucErr   error
		status  int
		wantMsg string
	}{
		{name: "missing date", target: "/api/v1/available-slots", status: http.StatusBadRequest, wantMsg: msgMissingDate},
		{name: "bad date", target: "/api/v1/available-slots?date=tomorrow", status: http.StatusBadRequest, wantMsg: msgInvalidDate},
		{name: "bad duration", target: "/api/v1/available-slots?date=2024-03-02&duration=long", status: http.StatusBadRequest, wantMsg: msgInvalidDuration},
		{name: "bad table", target: "/api/v1/available-slots?date=2024-03-02&table=-1", status: http.StatusBadRequest, wantMsg: msgInvalidTableID},
		{
			name:    "unknown table",
			target:  "/api/v1/available-slots?date=2024-03-02&table=9",
			ucErr:   getAvailableSlots.ErrTableNotFound,
			status:  http.StatusNotFound,
			wantMsg: msgTableNotFound,
		},
		{
			name:    "outside window",
			target:  "/api/v1/available-slots?date=2025-03-02",
			ucErr:   getAvailableSlots.ErrDateOutsideWindow,
			status:  http.StatusBadRequest,
			wantMsg: msgDateOutsideWindow,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tc.ucErr}, tc.target)

			require.Equal(t, tc.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantMsg, body.Message)
		})
	}
}
