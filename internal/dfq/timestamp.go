package dfq

import (
	"regexp"
	"strconv"
	"time"
)

// TwoDigitYearPivot defines how 2-digit years are interpreted: years that
// would land more than this many years in the future are assumed to be in
// the previous century.
var TwoDigitYearPivot = 20

// timestampRe captures the transfer format's date/time spellings:
// day-first d.m.y with a `/` or a space before H:M:S, each field 1 or 2
// digits, year 2 or 4 digits. Day-first is always assumed; the format has
// no locale switching.
var timestampRe = regexp.MustCompile(
	`^(\d{1,2})\.(\d{1,2})\.(\d{2}|\d{4})[/ ](\d{1,2}):(\d{1,2}):(\d{1,2})$`)

// ParseTimestamp normalizes one date/time token. The zero result
// (Valid=false) means "unparseable", which callers must keep distinct from
// "absent" and must never replace with the current wall clock.
func ParseTimestamp(s string) Timestamp {
	m := timestampRe.FindStringSubmatch(s)
	if m == nil {
		return Timestamp{}
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	second, _ := strconv.Atoi(m[6])

	if len(m[3]) == 2 {
		year += 2000
		if year > time.Now().Year()+TwoDigitYearPivot {
			year -= 100
		}
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	// time.Date normalizes out-of-range components (32.13. rolls over);
	// reject those instead of accepting a shifted date.
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != second {
		return Timestamp{}
	}
	return Timestamp{Time: t, Valid: true}
}
