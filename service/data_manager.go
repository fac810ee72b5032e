package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/takvimi-shqip/takvimi-api/dto"
)

// DataManager persists finished extraction results as JSON files: one file
// per year plus one per non-empty month, under jsonDir/<year>/.
type DataManager struct {
	jsonDir string
}

func NewDataManager(jsonDir string) *DataManager {
	return &DataManager{jsonDir: jsonDir}
}

// SaveYear writes the full-year file and the individual month files.
// Months without any day records get no month file.
func (m *DataManager) SaveYear(year string, data dto.Year) error {
	yearDir := filepath.Join(m.jsonDir, year)
	if err := os.MkdirAll(yearDir, 0o755); err != nil {
		return fmt.Errorf("create year dir: %w", err)
	}

	yearPath := filepath.Join(m.jsonDir, year+".json")
	if err := writeJSON(yearPath, dto.YearResponse{Year: year, Data: data}); err != nil {
		return err
	}

	for month, bucket := range data {
		if len(bucket) == 0 {
			continue
		}
		monthPath := filepath.Join(yearDir, month+".json")
		if err := writeJSON(monthPath, dto.MonthResponse{Year: year, Month: month, Data: bucket}); err != nil {
			return err
		}
	}

	log.Info().Str("year", year).Int("days", data.DayCount()).Msg("[cache] saved extraction result")
	return nil
}

// LoadYear reads a cached full-year file; ok is false when none exists or
// it cannot be decoded.
func (m *DataManager) LoadYear(year string) (dto.YearResponse, bool) {
	var resp dto.YearResponse
	if !readJSON(filepath.Join(m.jsonDir, year+".json"), &resp) {
		return dto.YearResponse{}, false
	}
	return resp, true
}

// LoadMonth reads a cached single-month file.
func (m *DataManager) LoadMonth(year, month string) (dto.MonthResponse, bool) {
	var resp dto.MonthResponse
	if !readJSON(filepath.Join(m.jsonDir, year, month+".json"), &resp) {
		return dto.MonthResponse{}, false
	}
	return resp, true
}

// ProcessedYears lists the years with a cached full-year file.
func (m *DataManager) ProcessedYears() []string {
	entries, err := os.ReadDir(m.jsonDir)
	if err != nil {
		return nil
	}
	var years []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			years = append(years, e.Name()[:len(e.Name())-len(".json")])
		}
	}
	return years
}

// ProcessedMonths lists the cached month files of a year.
func (m *DataManager) ProcessedMonths(year string) []string {
	entries, err := os.ReadDir(filepath.Join(m.jsonDir, year))
	if err != nil {
		return nil
	}
	var months []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			months = append(months, e.Name()[:len(e.Name())-len(".json")])
		}
	}
	return months
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) bool {
	b, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		log.Warn().Str("path", path).Err(err).Msg("[cache] unreadable cache file")
		return false
	}
	return true
}
