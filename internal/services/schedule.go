package services

import (
	"strconv"
	"strings"
	"time"
)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// NormalizeDate resolves a weekday name to the next occurrence of that
// weekday after now, formatted like "January 20, 2026". Anything that is not
// a weekday name is assumed to be an explicit date and passed through
// unchanged.
func NormalizeDate(day string, now time.Time) string {
	target, ok := weekdays[strings.ToLower(strings.TrimSpace(day))]
	if !ok {
		return day
	}
	ahead := int(target-now.Weekday()+7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return now.AddDate(0, 0, ahead).Format("January 2, 2006")
}

// NormalizeTime converts a time preference to a 12-hour clock string.
// Values already carrying am/pm pass through; "HH:MM" 24-hour values are
// converted; anything else falls back to "7:00 PM".
func NormalizeTime(value string) string {
	trimmed := strings.TrimSpace(value)
	lower := strings.ToLower(trimmed)
	if strings.Contains(lower, "am") || strings.Contains(lower, "pm") {
		return trimmed
	}

	if hour, minute, ok := strings.Cut(trimmed, ":"); ok {
		h, err := strconv.Atoi(hour)
		if err == nil && h >= 0 && h <= 23 && validMinute(minute) {
			suffix := "AM"
			switch {
			case h == 0:
				h = 12
			case h == 12:
				suffix = "PM"
			case h > 12:
				h -= 12
				suffix = "PM"
			}
			return strconv.Itoa(h) + ":" + minute + " " + suffix
		}
	}
	return "7:00 PM"
}

func validMinute(minute string) bool {
	if len(minute) != 2 {
		return false
	}
	m, err := strconv.Atoi(minute)
	return err == nil && m >= 0 && m <= 59
}
