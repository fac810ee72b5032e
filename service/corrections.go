package service

import "fmt"

// HolidayTable maps "MM-DD" codes to festival text. Static per year,
// consulted during the merge pass, never mutated by extraction.
type HolidayTable map[string]string

// CorrectionTable maps "YYYY-MM-DD" dates to a partial prayer-time
// override keyed by field name. Applied last; always wins over extracted
// values.
type CorrectionTable map[string]map[string]string

// KnownHolidays returns the festival table for a year: the fixed civil
// dates plus the movable religious dates where they are known.
func KnownHolidays(year int) HolidayTable {
	h := HolidayTable{
		"01-01": fmt.Sprintf("Viti i Ri %d", year),
		"03-14": "Dita e Verës",
		"11-28": "Dita e Flamurit",
	}
	switch year {
	case 2024:
		h["03-11"] = "Fillimi i Ramazanit"
		h["04-10"] = "Fitër Bajrami"
		h["06-16"] = "Kurban Bajrami"
		h["07-07"] = "Viti i Ri sipas Hixhretit 1446"
	case 2025:
		h["03-01"] = "Fillimi i Ramazanit"
		h["03-30"] = "Fitër Bajrami"
		h["06-06"] = "Kurban Bajrami"
		h["06-26"] = "Viti i Ri sipas Hixhretit 1447"
	}
	return h
}

// TimeCorrections returns the manual time overrides for a year. Each entry
// names only the fields it corrects; unnamed fields keep their extracted
// values.
func TimeCorrections(year int) CorrectionTable {
	switch year {
	case 2024:
		return CorrectionTable{
			// Printed imsak on the Ramadan start page is off by one minute.
			"2024-03-11": {"imsaku": "04:19"},
		}
	default:
		return CorrectionTable{}
	}
}
