package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-TableBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date     string         `json:"date"`     // "2024-03-01"
	Hour     timegrid.Hour  `json:"hour"`     // "13:30" или 13.5
	Duration float64        `json:"duration"` // часы
	Table    domain.TableID `json:"table"`
	People   int            `json:"ppl"`
	Phone    string         `json:"phone"`
	Address  string         `json:"address"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64          `json:"id"`
	Date      string         `json:"date"`
	Hour      string         `json:"hour"`
	Duration  float64        `json:"duration"`
	Table     domain.TableID `json:"table"`
	People    int            `json:"people"`
	Phone     string         `json:"phone"`
	Address   string         `json:"address,omitempty"`
	CreatedAt string         `json:"createdAt,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := timegrid.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Date:     date,
		Hour:     r.Hour,
		Duration: r.Duration,
		Table:    r.Table,
		People:   r.People,
		Phone:    r.Phone,
		Address:  r.Address,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	result := &BookingResponse{
		ID:       resp.ID,
		Date:     resp.Date.Key(),
		Hour:     resp.Start.String(),
		Duration: resp.Duration.Hours(),
		Table:    resp.Table,
		People:   resp.People,
		Phone:    resp.Phone,
		Address:  resp.Address,
	}
	if !resp.CreatedAt.IsZero() {
		result.CreatedAt = resp.CreatedAt.Format(time.RFC3339)
	}
	return result
}
