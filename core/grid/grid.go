// Package grid turns generated class schedules into day by slot tables that
// share one set of time columns across every class group.
package grid

import (
	"sort"
	"strings"

	"github.com/kilianp07/skejul/core/model"
)

// Grid is the weekly table of one class group. Cells is indexed by row
// (day) then column (slot).
type Grid struct {
	Class string     `json:"class"`
	Days  []string   `json:"days"`
	Slots []string   `json:"slots"`
	Cells [][]string `json:"cells"`
}

// Cell returns the value at day and slot, or an empty string.
func (g Grid) Cell(day, slot string) string {
	r, c := indexOf(g.Days, day), indexOf(g.Slots, slot)
	if r < 0 || c < 0 {
		return ""
	}
	return g.Cells[r][c]
}

// Rows returns the days paired with their cell values.
func (g Grid) Rows() [][]string {
	out := make([][]string, len(g.Days))
	for i, d := range g.Days {
		out[i] = append([]string{d}, g.Cells[i]...)
	}
	return out
}

// Build creates one grid per class. The order of the result follows order;
// classes present in timetables but missing from order are appended in
// lexical order. Days default to Monday to Friday when empty.
func Build(order []string, timetables model.ClassTimetables, days []model.DayOfWeek) []Grid {
	rows := rowNames(days)
	slots := CollectSlots(timetables)
	col := make(map[string]int, len(slots))
	for i, s := range slots {
		col[s] = i
	}

	grids := make([]Grid, 0, len(timetables))
	for _, class := range classOrder(order, timetables) {
		sched := timetables[class]
		cells := make([][]string, len(rows))
		for r, day := range rows {
			cells[r] = make([]string, len(slots))
			for _, p := range sched[day] {
				cells[r][col[p.Slot()]] = p.Label()
			}
		}
		grids = append(grids, Grid{Class: class, Days: rows, Slots: slots, Cells: cells})
	}
	return grids
}

// CollectSlots returns every distinct slot across all classes sorted by
// start time, then end time, then lexically. Slots whose times cannot be
// parsed sort after the others.
func CollectSlots(timetables model.ClassTimetables) []string {
	set := make(map[string]struct{})
	for _, sched := range timetables {
		for _, periods := range sched {
			for _, p := range periods {
				set[p.Slot()] = struct{}{}
			}
		}
	}
	slots := make([]string, 0, len(set))
	for s := range set {
		slots = append(slots, s)
	}
	SortSlots(slots)
	return slots
}

// SortSlots orders "<start> - <end>" keys chronologically in place.
func SortSlots(slots []string) {
	type key struct {
		start, end int
		ok         bool
	}
	keys := make(map[string]key, len(slots))
	for _, s := range slots {
		start, end, ok := ParseSlot(s)
		keys[s] = key{start, end, ok}
	}
	sort.SliceStable(slots, func(i, j int) bool {
		a, b := keys[slots[i]], keys[slots[j]]
		if a.ok != b.ok {
			return a.ok
		}
		if a.ok {
			if a.start != b.start {
				return a.start < b.start
			}
			if a.end != b.end {
				return a.end < b.end
			}
		}
		return slots[i] < slots[j]
	})
}

// ParseSlot splits a slot key into start and end minutes.
func ParseSlot(slot string) (start, end int, ok bool) {
	a, b, found := strings.Cut(slot, " - ")
	if !found {
		return 0, 0, false
	}
	var err error
	if start, err = model.ParseClock(a); err != nil {
		return 0, 0, false
	}
	if end, err = model.ParseClock(b); err != nil {
		return 0, 0, false
	}
	return start, end, true
}

func rowNames(days []model.DayOfWeek) []string {
	if len(days) == 0 {
		days = model.Weekdays
	}
	sorted := model.SortDays(days)
	out := make([]string, len(sorted))
	for i, d := range sorted {
		out[i] = string(d)
	}
	return out
}

func classOrder(order []string, timetables model.ClassTimetables) []string {
	seen := make(map[string]struct{}, len(timetables))
	out := make([]string, 0, len(timetables))
	for _, c := range order {
		if _, ok := timetables[c]; !ok {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	var rest []string
	for c := range timetables {
		if _, ok := seen[c]; !ok {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
