package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

// Client клиент JSON API с бронированиями и событиями (json-server)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListByDateRange бронирования с датой в [from, to)
func (c *Client) ListByDateRange(ctx context.Context, from, to timegrid.Date) ([]domain.ReservationRecord, error) {
	params := dateRange(from, to)

	var bookings []Booking
	if err := c.get(ctx, "/bookings", params, &bookings); err != nil {
		return nil, err
	}

	records := make([]domain.ReservationRecord, 0, len(bookings))
	for _, b := range bookings {
		records = append(records, b.record())
	}
	return records, nil
}

// ListByTableAndDate бронирования столика на дату
func (c *Client) ListByTableAndDate(ctx context.Context, table domain.TableID, date timegrid.Date) ([]domain.ReservationRecord, error) {
	params := url.Values{}
	params.Set("date", date.Key())
	params.Set("table", strconv.FormatInt(int64(table), 10))

	var bookings []Booking
	if err := c.get(ctx, "/bookings", params, &bookings); err != nil {
		return nil, err
	}

	records := make([]domain.ReservationRecord, 0, len(bookings))
	for _, b := range bookings {
		records = append(records, b.record())
	}
	return records, nil
}

// ListOneOff разовые события с датой в [from, to)
func (c *Client) ListOneOff(ctx context.Context, from, to timegrid.Date) ([]domain.ReservationRecord, error) {
	params := dateRange(from, to)
	params.Set("repeat", "false")

	var events []Event
	if err := c.get(ctx, "/events", params, &events); err != nil {
		return nil, err
	}

	records := make([]domain.ReservationRecord, 0, len(events))
	for _, e := range events {
		records = append(records, e.record())
	}
	return records, nil
}

// ListRecurring повторяющиеся события, начавшиеся до конца окна to
func (c *Client) ListRecurring(ctx context.Context, to timegrid.Date) ([]domain.RecurringRecord, error) {
	params := url.Values{}
	params.Set("repeat_ne", "false")
	params.Set("date_lte", to.AddDays(-1).Key())

	var events []Event
	if err := c.get(ctx, "/events", params, &events); err != nil {
		return nil, err
	}

	records := make([]domain.RecurringRecord, 0, len(events))
	for _, e := range events {
		records = append(records, e.recurring())
	}
	return records, nil
}

// Create отправляет бронирование и возвращает его с присвоенным id
func (c *Client) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	body, err := json.Marshal(fromDomain(booking))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode booking: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bookings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, http.StatusCreated, http.StatusOK); err != nil {
		return nil, err
	}

	var created Booking
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	booking.ID = created.ID
	booking.CreatedAt = time.Now()

	c.log.Info("Booking created in external API: id=%d, table=%d, date=%s", booking.ID, booking.Table, booking.Date)
	return booking, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, http.StatusOK); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode %s: %v", ErrInvalidResponse, path, err)
	}
	return nil
}

func checkStatus(resp *http.Response, expected ...int) error {
	for _, code := range expected {
		if resp.StatusCode == code {
			return nil
		}
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}
	return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
}

// dateRange параметры json-server для полуинтервала [from, to)
func dateRange(from, to timegrid.Date) url.Values {
	params := url.Values{}
	params.Set("date_gte", from.Key())
	params.Set("date_lte", to.AddDays(-1).Key())
	return params
}
