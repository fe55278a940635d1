package timegrid

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	MinutesPerSlot = 30
	SlotsPerHour   = 60 / MinutesPerSlot
	SlotsPerDay    = 24 * SlotsPerHour
)

var (
	// ErrInvalidTimeFormat возвращается, когда значение времени не удаётся разобрать
	ErrInvalidTimeFormat = errors.New("timegrid: invalid time format")

	// ErrNotAligned возвращается, когда время или длительность не кратны получасу
	ErrNotAligned = errors.New("timegrid: value is not aligned to half an hour")
)

// alignmentEpsilon допуск при проверке кратности получасу для дробных часов
const alignmentEpsilon = 1e-9

// Slot номер получасового интервала от полуночи (12:00 -> 24, 12:30 -> 25)
type Slot int

// FromHours переводит дробное значение часа (13.5) в слот
func FromHours(hours float64) (Slot, error) {
	units, err := halfHours(hours)
	if err != nil {
		return 0, err
	}
	if units < 0 || units >= SlotsPerDay {
		return 0, fmt.Errorf("%w: hour %v is out of day range", ErrInvalidTimeFormat, hours)
	}
	return Slot(units), nil
}

// Parse разбирает время в виде "HH:MM" или числа часов ("13.5").
// "13:30" и "13.5" дают один и тот же слот.
func Parse(value string) (Slot, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidTimeFormat)
	}

	if !strings.Contains(value, ":") {
		hours, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
		}
		return FromHours(hours)
	}

	parts := strings.Split(value, ":")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}
	if minute%MinutesPerSlot != 0 {
		return 0, fmt.Errorf("%w: %q", ErrNotAligned, value)
	}

	return Slot(hour*SlotsPerHour + minute/MinutesPerSlot), nil
}

// Hours возвращает слот в дробных часах (25 -> 12.5)
func (s Slot) Hours() float64 {
	return float64(s) / SlotsPerHour
}

// Add сдвигает слот на span получасов
func (s Slot) Add(span Span) Slot {
	return s + Slot(span)
}

// String форматирует слот как "HH:MM"
func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d", int(s)/SlotsPerHour, (int(s)%SlotsPerHour)*MinutesPerSlot)
}

// Span длительность в получасовых интервалах
type Span int

// SpanFromHours переводит длительность в часах (1.5) в количество получасов.
// Отрицательные значения допустимы и означают пустой интервал.
func SpanFromHours(hours float64) (Span, error) {
	units, err := halfHours(hours)
	if err != nil {
		return 0, err
	}
	return Span(units), nil
}

// Hours возвращает длительность в часах
func (s Span) Hours() float64 {
	return float64(s) / SlotsPerHour
}

// Hour время начала в том виде, в каком оно приходит из внешних данных:
// число часов (13.5) или строка "13:30"
type Hour string

// HourFromFloat создаёт Hour из дробного значения часа
func HourFromFloat(hours float64) Hour {
	return Hour(strconv.FormatFloat(hours, 'f', -1, 64))
}

// IsZero возвращает true, если значение отсутствует
func (h Hour) IsZero() bool {
	return strings.TrimSpace(string(h)) == ""
}

// Slot переводит значение в слот
func (h Hour) Slot() (Slot, error) {
	return Parse(string(h))
}

// UnmarshalJSON принимает как число, так и строку
func (h *Hour) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*h = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
		}
		*h = Hour(s)
		return nil
	}

	var hours float64
	if err := json.Unmarshal(data, &hours); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimeFormat, string(data))
	}
	*h = HourFromFloat(hours)
	return nil
}

// MarshalJSON пишет числовые значения числом, остальные строкой
func (h Hour) MarshalJSON() ([]byte, error) {
	value := strings.TrimSpace(string(h))
	if value == "" {
		return []byte("null"), nil
	}
	if hours, err := strconv.ParseFloat(value, 64); err == nil {
		return json.Marshal(hours)
	}
	return json.Marshal(value)
}

func halfHours(hours float64) (int, error) {
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTimeFormat, hours)
	}
	scaled := hours * SlotsPerHour
	rounded := math.Round(scaled)
	if math.Abs(scaled-rounded) > alignmentEpsilon {
		return 0, fmt.Errorf("%w: %v", ErrNotAligned, hours)
	}
	return int(rounded), nil
}
