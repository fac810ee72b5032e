package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month string
		want  int
	}{
		{2024, "01", 31},
		{2024, "02", 29},
		{2023, "02", 28},
		{2000, "02", 29},
		{1900, "02", 28},
		{2024, "04", 30},
		{2024, "06", 30},
		{2024, "09", 30},
		{2024, "11", 30},
		{2024, "12", 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.month), "%d-%s", tt.year, tt.month)
	}
}

func TestWeekdayFor(t *testing.T) {
	// 2024-01-01 was a Monday.
	assert.Equal(t, "e hënë", WeekdayFor(2024, "01", 1))
	assert.Equal(t, "e diel", WeekdayFor(2024, "01", 7))
	assert.Equal(t, "e enjte", WeekdayFor(2024, "02", 29))

	assert.Equal(t, "", WeekdayFor(2023, "02", 29))
	assert.Equal(t, "", WeekdayFor(2024, "13", 1))
	assert.Equal(t, "", WeekdayFor(2024, "01", 0))
}

func TestMonthFromText(t *testing.T) {
	code, ok := MonthFromText("Kohët e namazit për muajin Janar 2024")
	assert.True(t, ok)
	assert.Equal(t, "01", code)

	code, ok = MonthFromText("NËNTOR")
	assert.True(t, ok)
	assert.Equal(t, "11", code)

	// Whole-word match only.
	_, ok = MonthFromText("marsi")
	assert.False(t, ok)

	_, ok = MonthFromText("faqe pa muaj")
	assert.False(t, ok)
}

func TestResolveMonth(t *testing.T) {
	code, ok := ResolveMonth("Dhjetor", 0)
	assert.True(t, ok)
	assert.Equal(t, "12", code)

	// Positional inference when no name is present.
	code, ok = ResolveMonth("vetëm tekst", 4)
	assert.True(t, ok)
	assert.Equal(t, "05", code)

	_, ok = ResolveMonth("vetëm tekst", 12)
	assert.False(t, ok)
}
