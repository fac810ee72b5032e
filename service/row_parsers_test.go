package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var january2024 = parseContext{year: 2024, month: "01"}

func TestFixedSchemaRow(t *testing.T) {
	row := []string{"1", "e hënë", "3", "Viti i Ri", "05:21", "06:10", "07:45", "12:30", "15:10", "18:05", "19:30", "13:09"}

	rec, strategy, ok := parseCascade(row, "", january2024)
	require.True(t, ok)
	assert.Equal(t, "fixed_schema", strategy)
	assert.Equal(t, 1, rec.Day)
	assert.Equal(t, "e hënë", rec.Weekday)
	assert.Contains(t, rec.Festival, "Viti i Ri")
	assert.Equal(t, "05:21", rec.Times.Imsaku)
	assert.Equal(t, "06:10", rec.Times.Sabahu)
	assert.Equal(t, "07:45", rec.Times.LindjaEDiellit)
	assert.Equal(t, "12:30", rec.Times.Dreka)
	assert.Equal(t, "15:10", rec.Times.Ikindia)
	assert.Equal(t, "18:05", rec.Times.Akshami)
	assert.Equal(t, "19:30", rec.Times.Jacia)
	assert.Equal(t, "13:09", rec.Times.GjatesiaEDites)
}

func TestFixedSchemaBeatsPermissive(t *testing.T) {
	// The line satisfies both the fixed-schema and the permissive pattern;
	// the weekday taken from the text (not computed from the date) proves
	// the fixed-schema result is the one stored.
	line := "2 e.martë 4 Festa 05:20 06:09 07:44 12:30 15:11 18:06 19:31 13:11"

	rec, strategy, ok := parseCascade(nil, line, january2024)
	require.True(t, ok)
	assert.Equal(t, "fixed_schema", strategy)
	assert.Equal(t, "e.martë", rec.Weekday)
	assert.Equal(t, "Festa", rec.Festival)
}

func TestLooseLineComputesWeekday(t *testing.T) {
	line := "1 3 Viti i Ri 05:21 06:10 07:45 12:30 15:10 18:05 19:30 13:09"

	rec, strategy, ok := parseCascade(nil, line, january2024)
	require.True(t, ok)
	assert.Equal(t, "loose", strategy)
	assert.Equal(t, 1, rec.Day)
	assert.Equal(t, "e hënë", rec.Weekday)
	assert.Equal(t, "Viti i Ri", rec.Festival)
	assert.Equal(t, "05:21", rec.Times.Imsaku)
	assert.Equal(t, "18:05", rec.Times.Akshami)
	assert.Equal(t, "19:30", rec.Times.Jacia)
	assert.Equal(t, "13:09", rec.Times.GjatesiaEDites)
}

func TestLooseLineSingleTrailingToken(t *testing.T) {
	// Only one token in the trailing segment: it is nightfall, day-length
	// stays empty.
	line := "1 3 05:21 06:10 07:45 12:30 15:10 18:05 19:30"

	rec, strategy, ok := parseCascade(nil, line, january2024)
	require.True(t, ok)
	assert.Equal(t, "loose", strategy)
	assert.Equal(t, "19:30", rec.Times.Jacia)
	assert.Equal(t, "", rec.Times.GjatesiaEDites)
}

func TestPositionalPartialLine(t *testing.T) {
	rec, ok := positionalParser{}.parse(nil, "7 shënim", january2024)
	require.True(t, ok)
	assert.Equal(t, 7, rec.Day)
	assert.Equal(t, "e diel", rec.Weekday)
	assert.Equal(t, "", rec.Times.Imsaku)
	assert.Equal(t, "", rec.Times.GjatesiaEDites)
}

func TestBruteForceFallback(t *testing.T) {
	line := "3: 05:21 06:10 07:45 12:30 15:10 18:05 19:30 13:09"

	rec, ok := bruteForceParser{}.parse(nil, line, january2024)
	require.True(t, ok)
	assert.Equal(t, 3, rec.Day)
	assert.Equal(t, "", rec.Festival)
	assert.Equal(t, "05:21", rec.Times.Imsaku)
	assert.Equal(t, "19:30", rec.Times.Jacia)
	assert.Equal(t, "13:09", rec.Times.GjatesiaEDites)
}

func TestBruteForceNeedsSevenTokens(t *testing.T) {
	_, ok := bruteForceParser{}.parse(nil, "3 05:21 06:10", january2024)
	assert.False(t, ok)
}

func TestDayRangeGuard(t *testing.T) {
	row := func(day string) []string {
		return []string{day, "e hënë", "3", "", "05:21", "06:10", "07:45", "12:30", "15:10", "18:05", "19:30", "13:09"}
	}

	_, _, ok := parseCascade(row("32"), "", january2024)
	assert.False(t, ok)

	_, _, ok = parseCascade(row("0"), "", january2024)
	assert.False(t, ok)

	// February 29th exists in 2024 but not in 2023.
	_, _, ok = parseCascade(row("29"), "", parseContext{year: 2024, month: "02"})
	assert.True(t, ok)

	_, _, ok = parseCascade(row("29"), "", parseContext{year: 2023, month: "02"})
	assert.False(t, ok)
}

func TestCascadeRejectsDaylessLine(t *testing.T) {
	_, _, ok := parseCascade(nil, "pa ditë 05:21 06:10 07:45 12:30 15:10 18:05 19:30", january2024)
	assert.False(t, ok)
}
