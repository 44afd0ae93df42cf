package model

import (
	"encoding/json"
	"strings"
)

// PeriodType classifies a period in the school day.
type PeriodType string

const (
	PeriodClass    PeriodType = "class"
	PeriodBreak    PeriodType = "break"
	PeriodPrayer   PeriodType = "prayer"
	PeriodActivity PeriodType = "activity"
	PeriodLunch    PeriodType = "lunch"
	PeriodAssembly PeriodType = "assembly"
	PeriodOther    PeriodType = "other"
)

var periodTypes = []PeriodType{PeriodClass, PeriodBreak, PeriodPrayer, PeriodActivity, PeriodLunch, PeriodAssembly, PeriodOther}

// ParsePeriodType normalises a raw period type. Unknown values map to
// PeriodOther and ok is false.
func ParsePeriodType(s string) (PeriodType, bool) {
	v := PeriodType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range periodTypes {
		if t == v {
			return t, true
		}
	}
	return PeriodOther, false
}

// Label returns the type with its first letter upper-cased ("Break").
func (t PeriodType) Label() string {
	s := string(t)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// SubjectDefinition is a subject taught to a class group.
type SubjectDefinition struct {
	Name         string `json:"name" yaml:"name"`
	Teacher      string `json:"teacher" yaml:"teacher"`
	SlotsPerWeek int    `json:"slots_per_week" yaml:"slots_per_week"`
}

// ClassGroup is a cohort sharing one weekly schedule.
type ClassGroup struct {
	Name     string              `json:"name" yaml:"name"`
	Subjects []SubjectDefinition `json:"subjects" yaml:"subjects"`
}

// TimePeriod is a named period of the school day such as a break.
type TimePeriod struct {
	Type  PeriodType `json:"type" yaml:"type"`
	Start string     `json:"start" yaml:"start"`
	End   string     `json:"end" yaml:"end"`
}

// TimetableData holds the structured fields extracted from free text.
// Every field is optional on input.
type TimetableData struct {
	Days        []DayOfWeek  `json:"days" yaml:"days"`
	StartTime   string       `json:"start_time" yaml:"start_time"`
	EndTime     string       `json:"end_time" yaml:"end_time"`
	Periods     []TimePeriod `json:"periods" yaml:"periods"`
	ClassGroups []ClassGroup `json:"class_groups" yaml:"class_groups"`
}

// Normalize canonicalises day names and period types in place.
func (d *TimetableData) Normalize() {
	if d == nil {
		return
	}
	for i, day := range d.Days {
		if v, ok := ParseDay(string(day)); ok {
			d.Days[i] = v
		}
	}
	for i := range d.Periods {
		d.Periods[i].Type, _ = ParsePeriodType(string(d.Periods[i].Type))
		d.Periods[i].Start = strings.TrimSpace(d.Periods[i].Start)
		d.Periods[i].End = strings.TrimSpace(d.Periods[i].End)
	}
	for i := range d.ClassGroups {
		d.ClassGroups[i].Name = strings.TrimSpace(d.ClassGroups[i].Name)
	}
}

// Group returns the first class group with the given name.
func (d *TimetableData) Group(name string) (ClassGroup, bool) {
	if d == nil {
		return ClassGroup{}, false
	}
	for _, g := range d.ClassGroups {
		if g.Name == name {
			return g, true
		}
	}
	return ClassGroup{}, false
}

// SubjectSlot is the subject placed in a class period.
type SubjectSlot struct {
	Name        string `json:"name" yaml:"name"`
	TeacherName string `json:"teacher_name" yaml:"teacher_name"`
}

// UnmarshalJSON accepts either an object or a bare subject name. The
// "teacher" key is read when "teacher_name" is absent.
func (s *SubjectSlot) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		*s = SubjectSlot{Name: name}
		return nil
	}
	var raw struct {
		Name        string `json:"name"`
		TeacherName string `json:"teacher_name"`
		Teacher     string `json:"teacher"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	s.Name = raw.Name
	s.TeacherName = raw.TeacherName
	if s.TeacherName == "" {
		s.TeacherName = raw.Teacher
	}
	return nil
}

// PeriodEntry is one period of a generated class schedule.
type PeriodEntry struct {
	PeriodNo   int          `json:"period_no" yaml:"period_no"`
	Start      string       `json:"start" yaml:"start"`
	End        string       `json:"end" yaml:"end"`
	Type       PeriodType   `json:"type" yaml:"type"`
	Subject    *SubjectSlot `json:"subject" yaml:"subject"`
	ClassGroup string       `json:"class_group,omitempty" yaml:"class_group,omitempty"`
}

// Slot returns the "<start> - <end>" key used as a grid column.
func (p PeriodEntry) Slot() string {
	return strings.TrimSpace(p.Start) + " - " + strings.TrimSpace(p.End)
}

// Label is the subject name for a period with a subject, otherwise the
// capitalised period type.
func (p PeriodEntry) Label() string {
	if p.Subject != nil && p.Subject.Name != "" {
		return p.Subject.Name
	}
	return p.Type.Label()
}

// Teacher returns the teacher of the period or an empty string.
func (p PeriodEntry) Teacher() string {
	if p.Subject == nil {
		return ""
	}
	return strings.TrimSpace(p.Subject.TeacherName)
}

// ClassSchedule is the generated week of one class group keyed by day name.
type ClassSchedule map[string][]PeriodEntry

// Days returns the schedule's day keys, known days first in week order.
func (s ClassSchedule) Days() []string {
	days := make([]DayOfWeek, 0, len(s))
	for d := range s {
		days = append(days, DayOfWeek(d))
	}
	out := make([]string, 0, len(days))
	for _, d := range SortDays(days) {
		out = append(out, string(d))
	}
	return out
}

// Normalize canonicalises day keys and period types. Entries whose day keys
// collapse to the same day are concatenated.
func (s ClassSchedule) Normalize() ClassSchedule {
	out := make(ClassSchedule, len(s))
	for _, key := range s.Days() {
		day := key
		if d, ok := ParseDay(key); ok {
			day = string(d)
		}
		for _, p := range s[key] {
			p.Type, _ = ParsePeriodType(string(p.Type))
			p.Start = strings.TrimSpace(p.Start)
			p.End = strings.TrimSpace(p.End)
			out[day] = append(out[day], p)
		}
		if _, ok := out[day]; !ok {
			out[day] = []PeriodEntry{}
		}
	}
	return out
}

// ClassTimetables maps a class group name to its generated schedule.
type ClassTimetables map[string]ClassSchedule
