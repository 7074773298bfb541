// Package schedule parses the free-text schedule and enrollment strings
// that the university portal exposes, e.g. "MWF 10:00-11:30" or "45/50".
// Portal text is frequently malformed, so both parsers are total: they
// return empty values instead of errors.
package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parsed is the structured form of one schedule string. StartTime and
// EndTime are "HH:MM" strings; empty means the time range could not be
// extracted, which callers must treat as "no usable slot".
type Parsed struct {
	Days      []string
	StartTime string
	EndTime   string
}

// Letter-code calendar: R is Thursday, U is Sunday.
var dayNames = map[byte]string{
	'M': "Monday",
	'T': "Tuesday",
	'W': "Wednesday",
	'R': "Thursday",
	'F': "Friday",
	'S': "Saturday",
	'U': "Sunday",
}

var (
	dayRunRE    = regexp.MustCompile(`^[MTWRFSU]+`)
	timeRangeRE = regexp.MustCompile(`(\d{1,2}:\d{2}(?:am|pm)?)\s*-\s*(\d{1,2}:\d{2}(?:am|pm)?)`)
	digitsRE    = regexp.MustCompile(`\d+`)
)

// ParseSchedule extracts meeting days and a time range from raw portal
// text. Days are read as a contiguous run of day letters at the start of
// the string; the time range is found anywhere in the string. Missing or
// unrecognized pieces yield empty fields, never an error.
func ParseSchedule(raw string) Parsed {
	var p Parsed
	if raw == "" {
		return p
	}

	if run := dayRunRE.FindString(strings.ToUpper(raw)); run != "" {
		for i := 0; i < len(run); i++ {
			p.Days = append(p.Days, dayNames[run[i]])
		}
	}

	if m := timeRangeRE.FindStringSubmatch(strings.ToLower(raw)); m != nil {
		p.StartTime = to24Hour(m[1])
		p.EndTime = to24Hour(m[2])
	}
	return p
}

// to24Hour converts "2:00pm" style clauses to "14:00". Clauses without a
// meridiem suffix are already 24-hour and pass through as-is. A clause
// that fails to parse is also returned unchanged; downstream slot
// creation filters those out.
func to24Hour(s string) string {
	if !strings.Contains(s, "am") && !strings.Contains(s, "pm") {
		return s
	}
	t, err := time.Parse("3:04pm", s)
	if err != nil {
		return s
	}
	return t.Format("15:04")
}

// TimeRange reports the parsed endpoints normalized to zero-padded
// "HH:MM", and whether they form a valid range (both present, both
// well-formed, start strictly before end). Slots are only persisted when
// ok is true.
func (p Parsed) TimeRange() (start, end string, ok bool) {
	st, err := time.Parse("15:04", p.StartTime)
	if err != nil {
		return "", "", false
	}
	et, err := time.Parse("15:04", p.EndTime)
	if err != nil {
		return "", "", false
	}
	if !st.Before(et) {
		return "", "", false
	}
	return st.Format("15:04"), et.Format("15:04"), true
}

// ParseEnrollment extracts the first run of digits from an enrollment
// string ("45/50", "45 of 50", "45" all yield 45). Returns 0 when no
// digits are present.
func ParseEnrollment(raw string) int {
	m := digitsRE.FindString(raw)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}
