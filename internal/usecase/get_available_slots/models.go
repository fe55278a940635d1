package get_available_slots

import (
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date     timegrid.Date
	Duration float64         // часы, 0 = один слот
	Table    *domain.TableID // если задан, считаются только слоты этого столика
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date       timegrid.Date
	Duration   timegrid.Span
	Slots      []Slot // по возрастанию времени начала
	SnapshotID string
}

// Slot время начала, с которого столики свободны на всю длительность
type Slot struct {
	Start           timegrid.Slot
	FreeTables      []domain.TableID
	AvailableTables int
	TotalTables     int
}
