package textnorm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date parsing errors.
var (
	ErrNotDateHeader = errors.New("not a date header")
	ErrInvalidDay    = errors.New("day out of range for month")
)

// headerPattern matches the start of a listing record:
// a 3-letter month, a 1-2 digit day, and a 3-letter weekday.
var headerPattern = regexp.MustCompile(`^([A-Za-z]{3})\.?\s+(\d{1,2})\s+([A-Za-z]{3})\.?\b\s*(.*)$`)

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
	"sat": time.Saturday,
}

// DateHeader is the parsed form of a record's date line.
type DateHeader struct {
	Month   time.Month
	Day     int
	Weekday time.Weekday
	// Rest is whatever followed the date tokens on the same line
	// (inline artists and venue for single-line records).
	Rest string
}

// MatchDateHeader reports whether a line opens a new record, returning the
// parsed header when it does. Unknown month or weekday tokens do not match.
func MatchDateHeader(line string) (DateHeader, bool) {
	m := headerPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return DateHeader{}, false
	}

	month, ok := months[strings.ToLower(m[1])]
	if !ok {
		return DateHeader{}, false
	}

	weekday, ok := weekdays[strings.ToLower(m[3])]
	if !ok {
		return DateHeader{}, false
	}

	day, err := strconv.Atoi(m[2])
	if err != nil || day < 1 || day > 31 {
		return DateHeader{}, false
	}

	return DateHeader{Month: month, Day: day, Weekday: weekday, Rest: strings.TrimSpace(m[4])}, true
}

// ParseDateString parses a stored record date string ("aug 15 fri") back into
// a header. The extractor keeps the raw string so the normalizer owns year
// resolution.
func ParseDateString(s string) (DateHeader, error) {
	h, ok := MatchDateHeader(s)
	if !ok {
		return DateHeader{}, fmt.Errorf("%w: %q", ErrNotDateHeader, s)
	}

	return h, nil
}

// ResolveDate anchors a header to a calendar year in the given location,
// returning midnight of the resolved day. The weekday token is not consulted
// here; use WeekdayMatches to cross-check it.
func ResolveDate(h DateHeader, year int, loc *time.Location) (time.Time, error) {
	t := time.Date(year, h.Month, h.Day, 0, 0, 0, 0, loc)
	// time.Date normalizes overflow (e.g. feb 30 -> mar 2); reject that.
	if t.Month() != h.Month || t.Day() != h.Day {
		return time.Time{}, fmt.Errorf("%w: %s %d", ErrInvalidDay, h.Month, h.Day)
	}

	return t, nil
}

// WeekdayMatches reports whether the header's weekday token agrees with the
// resolved date. A mismatch usually means the listing assumed a different year.
func WeekdayMatches(h DateHeader, resolved time.Time) bool {
	return resolved.Weekday() == h.Weekday
}

// ISODate formats a resolved date as YYYY-MM-DD.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// clockPattern matches show times like "8pm", "7:30pm", "12am".
var clockPattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?(am|pm)$`)

// ParseClockTime parses a 12-hour clock token onto the given date, returning
// false for anything that is not a time.
func ParseClockTime(token string, date time.Time) (time.Time, bool) {
	m := clockPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(token)))
	if m == nil {
		return time.Time{}, false
	}

	hour, _ := strconv.Atoi(m[1])
	if hour < 1 || hour > 12 {
		return time.Time{}, false
	}

	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
		if minute > 59 {
			return time.Time{}, false
		}
	}

	if hour == 12 {
		hour = 0
	}

	if m[3] == "pm" {
		hour += 12
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), true
}
