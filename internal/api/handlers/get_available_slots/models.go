package get_available_slots

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-TableBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

var (
	errInvalidDate     = errors.New("invalid date")
	errInvalidDuration = errors.New("invalid duration")
	errInvalidTableID  = errors.New("invalid table id")
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date       string          `json:"date"`
	Duration   float64         `json:"duration"`
	Slots      []AvailableSlot `json:"slots"`
	SnapshotID string          `json:"snapshotId,omitempty"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string           `json:"startTime"`
	FreeTables      []domain.TableID `json:"freeTables"`
	AvailableTables int              `json:"availableTables"`
	TotalTables     int              `json:"totalTables"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       slot.Start.String(),
			FreeTables:      slot.FreeTables,
			AvailableTables: slot.AvailableTables,
			TotalTables:     slot.TotalTables,
		}
	}

	return &AvailableSlotsResponse{
		Date:       resp.Date.Key(),
		Duration:   resp.Duration.Hours(),
		Slots:      slots,
		SnapshotID: resp.SnapshotID,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров.
// duration и table необязательны.
func ToUseCaseRequest(dateStr, durationStr, tableStr string) (*getAvailableSlots.Request, error) {
	date, err := timegrid.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	req := &getAvailableSlots.Request{Date: date}

	if durationStr != "" {
		duration, err := strconv.ParseFloat(durationStr, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errInvalidDuration, durationStr)
		}
		req.Duration = duration
	}

	if tableStr != "" {
		id, err := strconv.ParseInt(tableStr, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: %q", errInvalidTableID, tableStr)
		}
		table := domain.TableID(id)
		req.Table = &table
	}

	return req, nil
}
