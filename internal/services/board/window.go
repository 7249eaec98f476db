package board

import (
	"strings"
	"time"

	// zone names from config must resolve on hosts without a zoneinfo database
	_ "time/tzdata"
)

// DateLayout is the calendar date format accepted from forms
const DateLayout = "2006-01-02"

// clockLayouts are tried in order; 12-hour with AM/PM first, as typed into the form
var clockLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"15:04",
}

// ParseWindow combines a date and two times of day into the session window.
// Times are read in loc (time.Local when nil) and both fall on the given date.
func ParseWindow(date, start, end string, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, time.Time{}, fieldError("date", ErrMissingField)
	}
	if strings.TrimSpace(start) == "" {
		return time.Time{}, time.Time{}, fieldError("start_time", ErrMissingField)
	}
	if strings.TrimSpace(end) == "" {
		return time.Time{}, time.Time{}, fieldError("end_time", ErrMissingField)
	}
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fieldError("date", ErrInvalidDate)
	}

	startAt, err := parseClock("start_time", start, day)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endAt, err := parseClock("end_time", end, day)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return startAt, endAt, nil
}

func parseClock(field, value string, day time.Time) (time.Time, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	if value == "" {
		return time.Time{}, fieldError(field, ErrMissingField)
	}

	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
	}

	return time.Time{}, fieldError(field, ErrInvalidTimeFormat)
}
