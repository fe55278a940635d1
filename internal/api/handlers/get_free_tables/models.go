package get_free_tables

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	getFreeTables "github.com/m04kA/SMC-TableBooking/internal/usecase/get_free_tables"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidHour = errors.New("invalid hour")
)

// TableResponse доступность одного столика
type TableResponse struct {
	Table     domain.TableID `json:"table"`
	Available bool           `json:"available"`
}

// FreeTablesResponse HTTP response model
type FreeTablesResponse struct {
	Date       string           `json:"date"`
	Hour       string           `json:"hour"`
	Tables     []TableResponse  `json:"tables"`
	Free       []domain.TableID `json:"free"`
	SnapshotID string           `json:"snapshotId,omitempty"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(dateStr, hourStr string) (*getFreeTables.Request, error) {
	date, err := timegrid.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	slot, err := timegrid.Parse(hourStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidHour, err)
	}

	return &getFreeTables.Request{Date: date, Slot: slot}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getFreeTables.Response) *FreeTablesResponse {
	tables := make([]TableResponse, 0, len(resp.Tables))
	for _, t := range resp.Tables {
		tables = append(tables, TableResponse{Table: t.Table, Available: t.Available})
	}

	free := resp.Free
	if free == nil {
		free = []domain.TableID{}
	}

	return &FreeTablesResponse{
		Date:       resp.Date.Key(),
		Hour:       resp.Slot.String(),
		Tables:     tables,
		Free:       free,
		SnapshotID: resp.SnapshotID,
	}
}
