package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock converts a clock string into minutes after midnight.
//
// Accepted forms are 12-hour times with a meridiem ("7:20 AM", "07:20AM",
// "12:05 pm") and 24-hour times ("07:20", "15:50").
func ParseClock(s string) (int, error) {
	raw := strings.ToUpper(strings.TrimSpace(s))
	if raw == "" {
		return 0, fmt.Errorf("empty clock value")
	}
	raw = strings.ReplaceAll(raw, ".", "")
	meridiem := ""
	switch {
	case strings.HasSuffix(raw, "AM"):
		meridiem = "AM"
	case strings.HasSuffix(raw, "PM"):
		meridiem = "PM"
	}
	raw = strings.TrimSpace(strings.TrimSuffix(raw, meridiem))

	hh, mm, ok := strings.Cut(raw, ":")
	if !ok {
		return 0, fmt.Errorf("clock %q: missing minutes", s)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil {
		return 0, fmt.Errorf("clock %q: bad hour: %w", s, err)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(mm))
	if err != nil {
		return 0, fmt.Errorf("clock %q: bad minute: %w", s, err)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock %q: minute out of range", s)
	}
	switch meridiem {
	case "":
		if hour < 0 || hour > 23 {
			return 0, fmt.Errorf("clock %q: hour out of range", s)
		}
	default:
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("clock %q: hour out of range", s)
		}
		hour %= 12
		if meridiem == "PM" {
			hour += 12
		}
	}
	return hour*60 + minute, nil
}

// FormatClock renders minutes after midnight in the "07:20 AM" form.
func FormatClock(minutes int) string {
	minutes = ((minutes % (24 * 60)) + 24*60) % (24 * 60)
	hour, minute := minutes/60, minutes%60
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%02d:%02d %s", hour, minute, meridiem)
}
