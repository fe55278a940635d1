package bookingapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// Booking бронирование в формате внешнего API
type Booking struct {
	ID       int64          `json:"id,omitempty"`
	Date     string         `json:"date"`
	Hour     timegrid.Hour  `json:"hour"`
	Duration float64        `json:"duration"`
	Table    domain.TableID `json:"table"`
	People   int            `json:"ppl"`
	Phone    string         `json:"phone"`
	Address  string         `json:"address"`
}

// Event событие заведения. Repeat равен false у разовых событий
// и виду повторения ("daily") у повторяющихся.
type Event struct {
	ID       int64          `json:"id,omitempty"`
	Name     string         `json:"name,omitempty"`
	Date     string         `json:"date,omitempty"`
	Hour     timegrid.Hour  `json:"hour"`
	Duration float64        `json:"duration"`
	Table    domain.TableID `json:"table"`
	Repeat   Repeat         `json:"repeat"`
}

// Repeat поле repeat: false, null или строка
type Repeat string

// UnmarshalJSON принимает false/null (нет повторения), true и строку
func (r *Repeat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "", "null", "false":
		*r = ""
		return nil
	case "true":
		*r = "true"
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("repeat: unexpected value %s", string(data))
	}
	*r = Repeat(s)
	return nil
}

// MarshalJSON пишет false для разовых событий
func (r Repeat) MarshalJSON() ([]byte, error) {
	if r == "" {
		return []byte("false"), nil
	}
	return []byte(strconv.Quote(string(r))), nil
}

func (b Booking) record() domain.ReservationRecord {
	return domain.ReservationRecord{Date: b.Date, Hour: b.Hour, Duration: b.Duration, Table: b.Table}
}

func (e Event) record() domain.ReservationRecord {
	return domain.ReservationRecord{Date: e.Date, Hour: e.Hour, Duration: e.Duration, Table: e.Table}
}

func (e Event) recurring() domain.RecurringRecord {
	return domain.RecurringRecord{Repeat: string(e.Repeat), Hour: e.Hour, Duration: e.Duration, Table: e.Table}
}

func fromDomain(b *domain.Booking) Booking {
	record := b.Record()
	return Booking{
		Date:     record.Date,
		Hour:     record.Hour,
		Duration: record.Duration,
		Table:    record.Table,
		People:   b.People,
		Phone:    b.Phone,
		Address:  b.Address,
	}
}
