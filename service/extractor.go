package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/takvimi-shqip/takvimi-api/dto"
	"github.com/takvimi-shqip/takvimi-api/utils"
)

// DefaultFrontMatterOffset is the 0-based page index of January's festival
// page in the standard takvimi layout: the month pages start after seven
// front-matter pages, two pages per month.
const DefaultFrontMatterOffset = 7

// headerKeywords identify a prayer-times table by its header row.
var headerKeywords = []string{"imsak", "sabah", "lindja", "dreka", "ikindia", "aksham", "jaci"}

var wholeNumberRegex = regexp.MustCompile(`^\d+$`)

// Extractor drives the extraction of a full calendar year out of a takvimi
// document. It holds no per-run state; the Year under construction is owned
// by the in-flight Extract call.
type Extractor struct {
	frontMatterOffset int
}

func NewExtractor(frontMatterOffset int) *Extractor {
	if frontMatterOffset < 0 {
		frontMatterOffset = DefaultFrontMatterOffset
	}
	return &Extractor{frontMatterOffset: frontMatterOffset}
}

// Extract runs the full pipeline: a per-month pass over the fixed page
// layout, a gap-fill re-scan for months the layout missed, the holiday
// merge and finally the manual corrections. The returned Year always
// carries all 12 months; only a document-level read failure is an error.
func (e *Extractor) Extract(doc Document, year int, holidays HolidayTable, corrections CorrectionTable) (dto.Year, error) {
	data := dto.NewYear()

	for i, month := range dto.MonthCodes {
		festivalPage := e.frontMatterOffset + i*2
		timesPage := festivalPage + 1
		if timesPage >= doc.PageCount() {
			continue
		}
		if err := e.extractFestivalPage(doc, festivalPage, month, year, data); err != nil {
			return nil, err
		}
		added, err := e.extractMonthPage(doc, timesPage, month, year, data)
		if err != nil {
			return nil, err
		}
		if added == 0 {
			text, err := doc.PageText(timesPage)
			if err != nil {
				return nil, err
			}
			added = extractLines(text, month, year, data)
		}
		log.Debug().Str("month", month).Int("days", added).Msg("[extract] per-month pass")
	}

	if err := e.gapFill(doc, year, data); err != nil {
		return nil, err
	}

	mergeFestivals(data, holidays)
	applyCorrections(data, corrections, year)

	log.Info().Int("year", year).Int("days", data.DayCount()).Msg("[extract] completed")
	return data, nil
}

// gapFill re-scans every page for months the fixed layout left without
// prayer times, detecting the month from page text alone.
func (e *Extractor) gapFill(doc Document, year int, data dto.Year) error {
	empty := map[string]bool{}
	for _, month := range dto.MonthCodes {
		if timedDayCount(data[month]) == 0 {
			empty[month] = true
		}
	}
	if len(empty) == 0 {
		return nil
	}
	log.Debug().Int("months", len(empty)).Msg("[extract] gap-fill pass")

	for i := 0; i < doc.PageCount(); i++ {
		text, err := doc.PageText(i)
		if err != nil {
			return err
		}
		month, ok := utils.MonthFromText(text)
		if !ok || !empty[month] {
			continue
		}
		tables, err := doc.PageTables(i)
		if err != nil {
			return err
		}
		for _, table := range tables {
			if len(table) <= 1 {
				continue
			}
			if n := headerKeywordTable(table, month, year, data); n > 0 {
				continue
			}
			fixedOffsetTable(table, month, year, data)
		}
	}
	return nil
}

// extractFestivalPage reads the dedicated festival page of a month: rows of
// four or more cells carrying a day number in the first cell and festival
// text in the fourth. Days not yet seen get a placeholder record with empty
// prayer times.
func (e *Extractor) extractFestivalPage(doc Document, pageIndex int, month string, year int, data dto.Year) error {
	tables, err := doc.PageTables(pageIndex)
	if err != nil {
		return err
	}
	for _, table := range tables {
		if len(table) <= 1 {
			continue
		}
		for _, row := range table[1:] {
			if len(row) < 4 {
				continue
			}
			day, ok := dayNumber(row[0])
			if !ok || day < 1 || day > utils.DaysInMonth(year, month) {
				continue
			}
			festival := strings.TrimSpace(row[3])
			if festival == "" {
				continue
			}
			key := fmt.Sprintf("%02d", day)
			rec, seen := data[month][key]
			if !seen {
				rec = dto.DayRecord{Day: day}
			}
			rec.Festival = festival
			data[month][key] = rec
		}
	}
	return nil
}

// extractMonthPage reads a month's prayer-times page by scanning each row's
// cells for time tokens: the first token of every cell after day and
// weekday, accepted when at least seven are found.
func (e *Extractor) extractMonthPage(doc Document, pageIndex int, month string, year int, data dto.Year) (int, error) {
	tables, err := doc.PageTables(pageIndex)
	if err != nil {
		return 0, err
	}
	added := 0
	for _, table := range tables {
		if len(table) <= 1 {
			continue
		}
		for _, row := range table[1:] {
			if len(row) < 7 {
				continue
			}
			day, ok := dayNumber(row[0])
			if !ok || day < 1 || day > utils.DaysInMonth(year, month) {
				continue
			}
			var tokens []string
			for _, cell := range row[2:] {
				if tok := utils.ExtractTime(cell); tok != "" {
					tokens = append(tokens, tok)
				}
			}
			if len(tokens) < 7 {
				continue
			}
			storeRecord(data, month, dto.DayRecord{
				Day:     day,
				Weekday: strings.TrimSpace(row[1]),
				Times:   timesFromTokens(tokens),
			})
			added++
		}
	}
	return added, nil
}

// headerKeywordTable parses a table only when its header row names a prayer
// time. Data rows are read from their time-bearing cells when at least
// seven exist, falling back to fixed column offsets otherwise.
func headerKeywordTable(table Table, month string, year int, data dto.Year) int {
	header := strings.ToLower(strings.Join(table[0], " "))
	found := false
	for _, kw := range headerKeywords {
		if strings.Contains(header, kw) {
			found = true
			break
		}
	}
	if !found {
		return 0
	}

	added := 0
	for _, row := range table[1:] {
		if len(row) < 2 {
			continue
		}
		day, ok := dayNumber(row[0])
		if !ok || day < 1 || day > utils.DaysInMonth(year, month) {
			continue
		}

		var tokens []string
		for _, cell := range row {
			if tok := utils.ExtractTime(cell); tok != "" {
				tokens = append(tokens, tok)
			}
		}
		if len(tokens) < 7 {
			// Fixed offsets: day, weekday, secondary calendar, then the
			// seven times, with day-length in the final column.
			const offset = 3
			tokens = tokens[:0]
			for i := offset; i < len(row) && i < offset+7; i++ {
				tokens = append(tokens, utils.ExtractTime(row[i]))
			}
			if len(row) > offset+7 {
				tokens = append(tokens, utils.ExtractTime(row[len(row)-1]))
			}
			if len(tokens) < 7 {
				continue
			}
		}
		storeRecord(data, month, dto.DayRecord{
			Day:     day,
			Weekday: strings.TrimSpace(row[1]),
			Times:   timesFromTokens(tokens),
		})
		added++
	}
	return added
}

// fixedOffsetTable assumes the rigid schema: day, weekday, secondary
// calendar, festival, then the eight time columns. Generic fallback when
// header detection is inconclusive.
func fixedOffsetTable(table Table, month string, year int, data dto.Year) int {
	added := 0
	for _, row := range table[1:] {
		if len(row) < 7 {
			continue
		}
		if !wholeNumberRegex.MatchString(strings.TrimSpace(row[0])) {
			continue
		}
		day, ok := dayNumber(row[0])
		if !ok || day < 1 || day > utils.DaysInMonth(year, month) {
			continue
		}
		var tokens []string
		for i := 4; i < 12 && i < len(row); i++ {
			tokens = append(tokens, utils.ExtractTime(row[i]))
		}
		storeRecord(data, month, dto.DayRecord{
			Day:      day,
			Weekday:  strings.TrimSpace(row[1]),
			Festival: strings.TrimSpace(row[3]),
			Times:    timesFromTokens(tokens),
		})
		added++
	}
	return added
}

// extractLines runs the parser cascade over a page's text lines. Lines
// without a single time token are skipped outright.
func extractLines(text string, month string, year int, data dto.Year) int {
	ctx := parseContext{year: year, month: month}
	added := 0
	for _, line := range strings.Split(text, "\n") {
		if !utils.ContainsTime(line) {
			continue
		}
		rec, strategy, ok := parseCascade(nil, line, ctx)
		if !ok {
			continue
		}
		storeRecord(data, month, rec)
		added++
		log.Debug().Str("month", month).Int("day", rec.Day).Str("strategy", strategy).Msg("[extract] line parsed")
	}
	return added
}

// storeRecord writes a record into its month bucket. A festival already on
// the day survives a record that carries none; all other fields are taken
// from the later write.
func storeRecord(data dto.Year, month string, rec dto.DayRecord) {
	key := fmt.Sprintf("%02d", rec.Day)
	if old, seen := data[month][key]; seen && rec.Festival == "" {
		rec.Festival = old.Festival
	}
	data[month][key] = rec
}

// timedDayCount counts the days of a bucket that carry prayer times.
func timedDayCount(bucket dto.MonthBucket) int {
	n := 0
	for _, rec := range bucket {
		if rec.Times.Imsaku != "" {
			n++
		}
	}
	return n
}

// mergeFestivals overlays the holiday table onto extracted festival text:
// set when empty, append with a separator otherwise. Extracted text is
// never shortened or replaced.
func mergeFestivals(data dto.Year, holidays HolidayTable) {
	for _, month := range dto.MonthCodes {
		for key, rec := range data[month] {
			holiday, ok := holidays[month+"-"+key]
			if !ok {
				continue
			}
			if rec.Festival == "" {
				rec.Festival = holiday
			} else {
				rec.Festival = rec.Festival + ", " + holiday
			}
			data[month][key] = rec
		}
	}
}

// applyCorrections overwrites exactly the named time fields of the records
// a correction date matches. Dates without a record are silently ignored.
func applyCorrections(data dto.Year, corrections CorrectionTable, year int) {
	prefix := fmt.Sprintf("%d-", year)
	for date, fields := range corrections {
		if !strings.HasPrefix(date, prefix) {
			continue
		}
		parts := strings.Split(date, "-")
		if len(parts) != 3 {
			continue
		}
		month, day := parts[1], parts[2]
		rec, ok := data[month][day]
		if !ok {
			continue
		}
		for field, value := range fields {
			setTimeField(&rec.Times, field, value)
		}
		data[month][day] = rec
		log.Debug().Str("date", date).Msg("[extract] correction applied")
	}
}

func setTimeField(t *dto.PrayerTimes, field, value string) {
	switch field {
	case "imsaku":
		t.Imsaku = value
	case "sabahu":
		t.Sabahu = value
	case "lindja_e_diellit":
		t.LindjaEDiellit = value
	case "dreka":
		t.Dreka = value
	case "ikindia":
		t.Ikindia = value
	case "akshami":
		t.Akshami = value
	case "jacia":
		t.Jacia = value
	case "gjatesia_e_dites":
		t.GjatesiaEDites = value
	}
}
