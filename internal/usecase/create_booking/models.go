package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// Request модель запроса на создание бронирования
type Request struct {
	Date     timegrid.Date
	Hour     timegrid.Hour // 13.5 или "13:30"
	Duration float64       // часы
	Table    domain.TableID
	People   int
	Phone    string
	Address  string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	Date      timegrid.Date
	Start     timegrid.Slot
	Duration  timegrid.Span
	Table     domain.TableID
	People    int
	Phone     string
	Address   string
	CreatedAt time.Time
}
