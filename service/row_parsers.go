package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/takvimi-shqip/takvimi-api/dto"
	"github.com/takvimi-shqip/takvimi-api/utils"
)

// parseContext carries the resolved year and month a row is parsed against.
type parseContext struct {
	year  int
	month string
}

// rowParser is one strategy of the parsing cascade. It receives a table
// row's cells (nil when parsing a raw text line) together with the row
// flattened to a single line, and either produces a candidate day record
// or reports no match.
type rowParser interface {
	name() string
	parse(cells []string, line string, ctx parseContext) (dto.DayRecord, bool)
}

// lineParsers is the cascade in priority order. The first strategy that
// matches commits; later strategies are not consulted.
var lineParsers = []rowParser{
	fixedSchemaParser{},
	looseParser{},
	positionalParser{},
	bruteForceParser{},
}

// parseCascade walks the cascade over one table row or text line. A
// candidate whose day number falls outside the resolved month is discarded
// and the row contributes nothing.
func parseCascade(cells []string, line string, ctx parseContext) (dto.DayRecord, string, bool) {
	for _, p := range lineParsers {
		rec, ok := p.parse(cells, line, ctx)
		if !ok {
			continue
		}
		if rec.Day < 1 || rec.Day > utils.DaysInMonth(ctx.year, ctx.month) {
			return dto.DayRecord{}, "", false
		}
		return rec, p.name(), true
	}
	return dto.DayRecord{}, "", false
}

var (
	digitRegex      = regexp.MustCompile(`\d+`)
	leadingDayRegex = regexp.MustCompile(`^\s*(\d+)`)

	fixedSchemaLineRegex = regexp.MustCompile(
		`(\d+)\s+(\S+)\s+(\d+)\s+(.*?)\s+(\d{1,2}:\d{2})\s+(\d{1,2}:\d{2})\s+(\d{1,2}:\d{2})\s+(\d{1,2}:\d{2})\s+(\d{1,2}:\d{2})\s+(\d{1,2}:\d{2})\s+(\d{1,2}:\d{2})\s+(\d{1,2}:\d{2})`)

	looseLineRegex = regexp.MustCompile(
		`(\d+)\W+(\d+)\s+(.*?)\s*(\d{1,2}:\d{2})\s+(\d{1,2}:\d{2})\s+(\d{1,2}:\d{2})\s+(\d{1,2}:\d{2})\s+(\d{1,2}:\d{2})\s+(\d{1,2}:\d{2})\s+(\d{1,2}:\d{2}.*)`)

	// The festival capture deliberately excludes digits: festival text that
	// overlaps a time-shaped token is dropped rather than guessed at.
	positionalLineRegex = regexp.MustCompile(
		`^\s*(\d+)(?:\D+(\d+))?(?:\D+([^\d]*))?` +
			strings.Repeat(`(?:\D+(\d{1,2}:\d{2}))?`, 8))
)

// timesFromTokens fills the eight prayer-time fields from tokens in
// declaration order; missing trailing tokens leave fields empty.
func timesFromTokens(tokens []string) dto.PrayerTimes {
	var t dto.PrayerTimes
	fields := []*string{
		&t.Imsaku, &t.Sabahu, &t.LindjaEDiellit, &t.Dreka,
		&t.Ikindia, &t.Akshami, &t.Jacia, &t.GjatesiaEDites,
	}
	for i, tok := range tokens {
		if i >= len(fields) {
			break
		}
		*fields[i] = tok
	}
	return t
}

// fixedSchemaParser expects day, weekday, secondary-calendar number,
// festival text, then eight contiguous time tokens. Highest confidence.
type fixedSchemaParser struct{}

func (fixedSchemaParser) name() string { return "fixed_schema" }

func (fixedSchemaParser) parse(cells []string, line string, ctx parseContext) (dto.DayRecord, bool) {
	if len(cells) >= 12 {
		day, ok := dayNumber(cells[0])
		if ok {
			var tokens []string
			for _, cell := range cells[4:] {
				if tok := utils.ExtractTime(cell); tok != "" {
					tokens = append(tokens, tok)
				}
			}
			if len(tokens) >= 8 {
				return dto.DayRecord{
					Day:      day,
					Weekday:  strings.TrimSpace(cells[1]),
					Festival: strings.TrimSpace(cells[3]),
					Times:    timesFromTokens(tokens[:8]),
				}, true
			}
		}
	}

	m := fixedSchemaLineRegex.FindStringSubmatch(line)
	if m == nil {
		return dto.DayRecord{}, false
	}
	day, ok := dayNumber(m[1])
	if !ok {
		return dto.DayRecord{}, false
	}
	return dto.DayRecord{
		Day:      day,
		Weekday:  m[2],
		Festival: strings.TrimSpace(m[4]),
		Times:    timesFromTokens(m[5:13]),
	}, true
}

// looseParser expects day, secondary-calendar number and festival text
// followed by seven time tokens. The weekday is not read from the text; it
// is computed from the resolved date. The trailing segment is scanned for
// up to two further tokens (nightfall, then day-length).
type looseParser struct{}

func (looseParser) name() string { return "loose" }

func (looseParser) parse(cells []string, line string, ctx parseContext) (dto.DayRecord, bool) {
	m := looseLineRegex.FindStringSubmatch(line)
	if m == nil {
		return dto.DayRecord{}, false
	}
	day, ok := dayNumber(m[1])
	if !ok {
		return dto.DayRecord{}, false
	}
	tokens := append([]string{}, m[4:10]...)
	trailing := utils.ExtractTimes(m[10])
	if len(trailing) > 0 {
		tokens = append(tokens, trailing[0])
	}
	if len(trailing) > 1 {
		tokens = append(tokens, trailing[1])
	}
	return dto.DayRecord{
		Day:      day,
		Weekday:  utils.WeekdayFor(ctx.year, ctx.month, day),
		Festival: strings.TrimSpace(m[3]),
		Times:    timesFromTokens(tokens),
	}, true
}

// positionalParser tolerates partial rows: a day number followed by up to
// eight loosely-separated fields. Present fields are filled, absent fields
// stay empty, and the weekday is computed from the resolved date.
type positionalParser struct{}

func (positionalParser) name() string { return "positional" }

func (positionalParser) parse(cells []string, line string, ctx parseContext) (dto.DayRecord, bool) {
	m := positionalLineRegex.FindStringSubmatch(line)
	if m == nil {
		return dto.DayRecord{}, false
	}
	day, ok := dayNumber(m[1])
	if !ok {
		return dto.DayRecord{}, false
	}
	var tokens []string
	for _, g := range m[4:12] {
		tokens = append(tokens, g)
	}
	return dto.DayRecord{
		Day:      day,
		Weekday:  utils.WeekdayFor(ctx.year, ctx.month, day),
		Festival: strings.TrimSpace(m[3]),
		Times:    timesFromTokens(tokens),
	}, true
}

// bruteForceParser takes any line starting with a day number that carries
// at least seven time tokens anywhere, in left-to-right order. Festival
// text is not recoverable at this confidence level.
type bruteForceParser struct{}

func (bruteForceParser) name() string { return "brute_force" }

func (bruteForceParser) parse(cells []string, line string, ctx parseContext) (dto.DayRecord, bool) {
	m := leadingDayRegex.FindStringSubmatch(line)
	if m == nil {
		return dto.DayRecord{}, false
	}
	tokens := utils.ExtractTimes(line)
	if len(tokens) < 7 {
		return dto.DayRecord{}, false
	}
	day, ok := dayNumber(m[1])
	if !ok {
		return dto.DayRecord{}, false
	}
	return dto.DayRecord{
		Day:     day,
		Weekday: utils.WeekdayFor(ctx.year, ctx.month, day),
		Times:   timesFromTokens(tokens),
	}, true
}

// dayNumber pulls the first integer out of a cell.
func dayNumber(cell string) (int, bool) {
	s := digitRegex.FindString(cell)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
