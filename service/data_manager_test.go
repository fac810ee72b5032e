package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takvimi-shqip/takvimi-api/dto"
)

func sampleYear() dto.Year {
	data := dto.NewYear()
	data["01"]["01"] = dto.DayRecord{
		Day:      1,
		Weekday:  "e hënë",
		Festival: "Viti i Ri",
		Times: dto.PrayerTimes{
			Imsaku: "05:21", Sabahu: "06:10", LindjaEDiellit: "07:45",
			Dreka: "12:30", Ikindia: "15:10", Akshami: "18:05",
			Jacia: "19:30", GjatesiaEDites: "13:09",
		},
	}
	return data
}

func TestSaveAndLoadYear(t *testing.T) {
	m := NewDataManager(t.TempDir())
	require.NoError(t, m.SaveYear("2024", sampleYear()))

	resp, ok := m.LoadYear("2024")
	require.True(t, ok)
	assert.Equal(t, "2024", resp.Year)
	assert.Len(t, resp.Data, 12)
	assert.Equal(t, "05:21", resp.Data["01"]["01"].Times.Imsaku)
	assert.Equal(t, "Viti i Ri", resp.Data["01"]["01"].Festival)
}

func TestSaveAndLoadMonth(t *testing.T) {
	m := NewDataManager(t.TempDir())
	require.NoError(t, m.SaveYear("2024", sampleYear()))

	resp, ok := m.LoadMonth("2024", "01")
	require.True(t, ok)
	assert.Equal(t, "2024", resp.Year)
	assert.Equal(t, "01", resp.Month)
	assert.Equal(t, "19:30", resp.Data["01"].Times.Jacia)
}

func TestEmptyMonthsGetNoFile(t *testing.T) {
	dir := t.TempDir()
	m := NewDataManager(dir)
	require.NoError(t, m.SaveYear("2024", sampleYear()))

	_, err := os.Stat(filepath.Join(dir, "2024", "02.json"))
	assert.True(t, os.IsNotExist(err))

	_, ok := m.LoadMonth("2024", "02")
	assert.False(t, ok)
}

func TestLoadMissingYear(t *testing.T) {
	m := NewDataManager(t.TempDir())
	_, ok := m.LoadYear("1999")
	assert.False(t, ok)
}

func TestProcessedListings(t *testing.T) {
	m := NewDataManager(t.TempDir())
	assert.Empty(t, m.ProcessedYears())

	require.NoError(t, m.SaveYear("2024", sampleYear()))
	require.NoError(t, m.SaveYear("2025", dto.NewYear()))

	assert.ElementsMatch(t, []string{"2024", "2025"}, m.ProcessedYears())
	assert.Equal(t, []string{"01"}, m.ProcessedMonths("2024"))
	assert.Empty(t, m.ProcessedMonths("2026"))
}

func TestCorruptCacheFileIsMiss(t *testing.T) {
	dir := t.TempDir()
	m := NewDataManager(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2024.json"), []byte("{not json"), 0o644))

	_, ok := m.LoadYear("2024")
	assert.False(t, ok)
}
