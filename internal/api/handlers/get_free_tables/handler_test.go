package get_free_tables

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	getFreeTables "github.com/m04kA/SMC-TableBooking/internal/usecase/get_free_tables"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	req  *getFreeTables.Request
	resp *getFreeTables.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getFreeTables.Request) (*getFreeTables.Response, error) {
	f.req = req
	return f.resp, f.err
}

func serve(t *testing.T, uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Success(t *testing.T) {
	date, err := timegrid.ParseDate("2024-03-01")
	require.NoError(t, err)

	uc := &fakeUseCase{resp: &getFreeTables.Response{
		Date: date,
		Slot: 27,
		Tables: []getFreeTables.TableAvailability{
			{Table: 1, Available: true},
			{Table: 2, Available: false},
		},
		Free:       []domain.TableID{1},
		SnapshotID: "snap",
	}}

	rec := serve(t, uc, "/api/v1/availability?date=2024-03-01&hour=13.5")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, timegrid.Slot(27), uc.req.Slot)
	assert.Nil(t, uc.req.Table)

	var body FreeTablesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2024-03-01", body.Date)
	assert.Equal(t, "13:30", body.Hour)
	assert.Equal(t, []domain.TableID{1}, body.Free)
	assert.Equal(t, []TableResponse{{Table: 1, Available: true}, {Table: 2, Available: false}}, body.Tables)
	assert.Equal(t, "snap", body.SnapshotID)
}

func TestHandle_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		target     string
		ucErr      error
		wantStatus int
		wantMsg    string
	}{
		{name: "missing date", target: "/api/v1/availability?hour=12:00", wantStatus: http.StatusBadRequest, wantMsg: msgMissingDate},
		{name: "missing hour", target: "/api/v1/availability?date=2024-03-01", wantStatus: http.StatusBadRequest, wantMsg: msgMissingHour},
		{name: "bad date", target: "/api/v1/availability?date=01.03.2024&hour=12:00", wantStatus: http.StatusBadRequest, wantMsg: msgInvalidDate},
		{name: "bad hour", target: "/api/v1/availability?date=2024-03-01&hour=noon", wantStatus: http.StatusBadRequest, wantMsg: msgInvalidHour},
		{name: "unaligned hour", target: "/api/v1/availability?date=2024-03-01&hour=12:15", wantStatus: http.StatusBadRequest, wantMsg: msgNotAligned},
		{
			name:       "outside window",
			target:     "/api/v1/availability?date=2024-03-01&hour=12:00",
			ucErr:      getFreeTables.ErrDateOutsideWindow,
			wantStatus: http.StatusBadRequest,
			wantMsg:    msgDateOutsideWindow,
		},
		{
			name:       "closed",
			target:     "/api/v1/availability?date=2024-03-01&hour=09:00",
			ucErr:      getFreeTables.ErrOutsideOpeningHours,
			wantStatus: http.StatusBadRequest,
			wantMsg:    msgOutsideOpeningHours,
		},
		{
			name:       "internal",
			target:     "/api/v1/availability?date=2024-03-01&hour=12:00",
			ucErr:      errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "внутренняя ошибка сервера",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, &fakeUseCase{err: tc.ucErr}, tc.target)

			require.Equal(t, tc.wantStatus, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantMsg, body.Message)
		})
	}
}
