package timegrid

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_AddDays(t *testing.T) {
	testCases := []struct {
		name     string
		date     Date
		days     int
		expected string
	}{
		{name: "same month", date: NewDate(2024, time.March, 1), days: 1, expected: "2024-03-02"},
		{name: "month rollover", date: NewDate(2024, time.January, 31), days: 1, expected: "2024-02-01"},
		{name: "leap day", date: NewDate(2024, time.February, 28), days: 1, expected: "2024-02-29"},
		{name: "year rollover", date: NewDate(2023, time.December, 31), days: 1, expected: "2024-01-01"},
		{name: "backwards", date: NewDate(2024, time.March, 1), days: -1, expected: "2024-02-29"},
		{name: "across daylight saving change", date: NewDate(2024, time.March, 30), days: 2, expected: "2024-04-01"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.date.AddDays(tc.days).Key())
		})
	}
}

func TestDate_KeyIsCanonical(t *testing.T) {
	parsed, err := ParseDate("2024-03-01")
	require.NoError(t, err)

	warsaw, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		warsaw = time.FixedZone("CET", 3600)
	}
	fromTime := DateOf(time.Date(2024, time.March, 1, 23, 45, 0, 0, warsaw))

	assert.Equal(t, parsed, fromTime)
	assert.Equal(t, parsed.Key(), fromTime.Key())
	assert.Equal(t, NewDate(2024, time.February, 30), parsed)
}

func TestDate_Ordering(t *testing.T) {
	a := NewDate(2024, time.January, 1)
	b := NewDate(2024, time.January, 4)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 3, a.DaysUntil(b))
	assert.Equal(t, -3, b.DaysUntil(a))
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("01.03.2024")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDate("")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDate_JSON(t *testing.T) {
	date := NewDate(2024, time.March, 1)

	data, err := json.Marshal(date)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-01"`, string(data))

	var decoded Date
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, date, decoded)
}
