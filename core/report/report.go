// Package report derives teacher views and an advisory load and clash report
// from generated class schedules. Nothing here modifies a schedule.
package report

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/skejul/core/model"
)

// TeacherTimetables maps a teacher to their week. Every entry carries the
// class group it was taken from.
type TeacherTimetables map[string]model.ClassSchedule

// Teachers returns the teacher names in lexical order.
func (t TeacherTimetables) Teachers() []string {
	out := make([]string, 0, len(t))
	for name := range t {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// BuildTeacherTimetables regroups class periods by teacher. Periods without
// a teacher are skipped and each day is ordered by start time.
func BuildTeacherTimetables(tt model.ClassTimetables) TeacherTimetables {
	out := TeacherTimetables{}
	for _, class := range classNames(tt) {
		sched := tt[class]
		for _, day := range sched.Days() {
			for _, p := range sched[day] {
				teacher := p.Teacher()
				if teacher == "" {
					continue
				}
				if out[teacher] == nil {
					out[teacher] = model.ClassSchedule{}
				}
				p.ClassGroup = class
				out[teacher][day] = append(out[teacher][day], p)
			}
		}
	}
	for _, sched := range out {
		for day := range sched {
			sortByStart(sched[day])
		}
	}
	return out
}

// TeacherLoad summarises how many periods a teacher holds per school day.
type TeacherLoad struct {
	Teacher      string         `json:"teacher"`
	Periods      int            `json:"periods"`
	PerDay       map[string]int `json:"per_day"`
	MeanPerDay   float64        `json:"mean_per_day"`
	StdDevPerDay float64        `json:"stddev_per_day"`
	ClassGroups  []string       `json:"class_groups"`
}

// Clash is a teacher placed in two groups at overlapping times on one day.
type Clash struct {
	Teacher string            `json:"teacher"`
	Day     string            `json:"day"`
	First   model.PeriodEntry `json:"first"`
	Second  model.PeriodEntry `json:"second"`
}

// Report is the advisory summary of a run.
type Report struct {
	Loads   []TeacherLoad `json:"loads"`
	Clashes []Clash       `json:"clashes"`
}

// Build computes loads over the given school days and detects clashes.
// When days is empty the days present in the schedules are used.
func Build(tt model.ClassTimetables, days []model.DayOfWeek) Report {
	teachers := BuildTeacherTimetables(tt)
	dayNames := schoolDays(tt, days)
	rep := Report{Loads: []TeacherLoad{}, Clashes: []Clash{}}
	for _, name := range teachers.Teachers() {
		sched := teachers[name]
		rep.Loads = append(rep.Loads, load(name, sched, dayNames))
		rep.Clashes = append(rep.Clashes, clashes(name, sched)...)
	}
	return rep
}

func load(teacher string, sched model.ClassSchedule, days []string) TeacherLoad {
	l := TeacherLoad{Teacher: teacher, PerDay: map[string]int{}}
	groups := map[string]struct{}{}
	counts := make([]float64, 0, len(days))
	for _, day := range days {
		n := 0
		for _, p := range sched[day] {
			if p.Type != model.PeriodClass {
				continue
			}
			n++
			groups[p.ClassGroup] = struct{}{}
		}
		l.PerDay[day] = n
		l.Periods += n
		counts = append(counts, float64(n))
	}
	switch len(counts) {
	case 0:
	case 1:
		l.MeanPerDay = counts[0]
	default:
		mean, std := stat.MeanStdDev(counts, nil)
		l.MeanPerDay = mean
		if !math.IsNaN(std) {
			l.StdDevPerDay = std
		}
	}
	for g := range groups {
		l.ClassGroups = append(l.ClassGroups, g)
	}
	sort.Strings(l.ClassGroups)
	return l
}

func clashes(teacher string, sched model.ClassSchedule) []Clash {
	var out []Clash
	for _, day := range sched.Days() {
		entries := sched[day]
		for i := 0; i < len(entries); i++ {
			for j := i + 1; j < len(entries); j++ {
				a, b := entries[i], entries[j]
				if a.ClassGroup == b.ClassGroup || a.Type != model.PeriodClass || b.Type != model.PeriodClass {
					continue
				}
				if overlaps(a, b) {
					out = append(out, Clash{Teacher: teacher, Day: day, First: a, Second: b})
				}
			}
		}
	}
	return out
}

func overlaps(a, b model.PeriodEntry) bool {
	as, ae, ok1 := span(a)
	bs, be, ok2 := span(b)
	if !ok1 || !ok2 {
		return a.Start == b.Start && a.End == b.End
	}
	return as < be && bs < ae
}

func span(p model.PeriodEntry) (int, int, bool) {
	s, err := model.ParseClock(p.Start)
	if err != nil {
		return 0, 0, false
	}
	e, err := model.ParseClock(p.End)
	if err != nil {
		return 0, 0, false
	}
	return s, e, true
}

func sortByStart(entries []model.PeriodEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, errA := model.ParseClock(entries[i].Start)
		b, errB := model.ParseClock(entries[j].Start)
		switch {
		case errA != nil:
			return false
		case errB != nil:
			return true
		}
		return a < b
	})
}

func classNames(tt model.ClassTimetables) []string {
	out := make([]string, 0, len(tt))
	for name := range tt {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func schoolDays(tt model.ClassTimetables, days []model.DayOfWeek) []string {
	if len(days) == 0 {
		for _, sched := range tt {
			for d := range sched {
				days = append(days, model.DayOfWeek(d))
			}
		}
	}
	var out []string
	for _, d := range model.SortDays(days) {
		out = append(out, string(d))
	}
	return out
}
