package model

import (
	"sort"
	"strings"
)

// DayOfWeek names a school day. Values are the English day names.
type DayOfWeek string

const (
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
	Saturday  DayOfWeek = "Saturday"
	Sunday    DayOfWeek = "Sunday"
)

// Week lists every day in canonical order.
var Week = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Weekdays is the default row set for grids when no school days are known.
var Weekdays = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday}

// ParseDay resolves a day name case-insensitively. Three letter
// abbreviations such as "tue" are accepted.
func ParseDay(s string) (DayOfWeek, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	if len(v) < 3 {
		return "", false
	}
	for _, d := range Week {
		name := strings.ToLower(string(d))
		if v == name || v == name[:3] {
			return d, true
		}
	}
	return "", false
}

// Index returns the position of the day in the week or -1 when unknown.
func (d DayOfWeek) Index() int {
	for i, w := range Week {
		if w == d {
			return i
		}
	}
	return -1
}

// Valid reports whether d is one of the seven week days.
func (d DayOfWeek) Valid() bool { return d.Index() >= 0 }

// SortDays returns the unique days of in ordered Monday first. Unknown names
// are kept after the known ones in lexical order.
func SortDays(in []DayOfWeek) []DayOfWeek {
	seen := make(map[DayOfWeek]struct{}, len(in))
	out := make([]DayOfWeek, 0, len(in))
	for _, d := range in {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Index(), out[j].Index()
		switch {
		case a >= 0 && b >= 0:
			return a < b
		case a >= 0:
			return true
		case b >= 0:
			return false
		}
		return out[i] < out[j]
	})
	return out
}
