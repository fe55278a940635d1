package get_free_tables

import (
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// Request модель запроса доступности
type Request struct {
	Date  timegrid.Date
	Slot  timegrid.Slot
	Table *domain.TableID // если задан, ответ только по этому столику
}

// TableAvailability доступность одного столика
type TableAvailability struct {
	Table     domain.TableID
	Available bool
}

// Response доступность столиков на дату и время
type Response struct {
	Date       timegrid.Date
	Slot       timegrid.Slot
	Tables     []TableAvailability // по возрастанию номера
	Free       []domain.TableID
	SnapshotID string // пусто, если индекс ещё не построен
}
