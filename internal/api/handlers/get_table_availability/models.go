package get_table_availability

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	getFreeTables "github.com/m04kA/SMC-TableBooking/internal/usecase/get_free_tables"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

var (
	errInvalidTableID = errors.New("invalid table id")
	errInvalidDate    = errors.New("invalid date")
	errInvalidHour    = errors.New("invalid hour")
)

// TableAvailabilityResponse HTTP response model
type TableAvailabilityResponse struct {
	Table      domain.TableID `json:"table"`
	Date       string         `json:"date"`
	Hour       string         `json:"hour"`
	Available  bool           `json:"available"`
	SnapshotID string         `json:"snapshotId,omitempty"`
}

// ToUseCaseRequest конвертирует параметры пути и запроса в модель use case
func ToUseCaseRequest(tableIDStr, dateStr, hourStr string) (*getFreeTables.Request, error) {
	id, err := strconv.ParseInt(tableIDStr, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: %q", errInvalidTableID, tableIDStr)
	}
	table := domain.TableID(id)

	date, err := timegrid.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	slot, err := timegrid.Parse(hourStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidHour, err)
	}

	return &getFreeTables.Request{Date: date, Slot: slot, Table: &table}, nil
}

// FromUseCaseResponse берёт из ответа use case единственный запрошенный столик
func FromUseCaseResponse(table domain.TableID, resp *getFreeTables.Response) *TableAvailabilityResponse {
	result := &TableAvailabilityResponse{
		Table:      table,
		Date:       resp.Date.Key(),
		Hour:       resp.Slot.String(),
		SnapshotID: resp.SnapshotID,
	}
	for _, t := range resp.Tables {
		if t.Table == table {
			result.Available = t.Available
		}
	}
	return result
}
