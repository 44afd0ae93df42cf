package model

import "fmt"

// TeacherBusy maps a teacher name to the slots already claimed by earlier
// class groups. Slots use the "<Day> <start>-<end>" form.
type TeacherBusy map[string][]string

// BusySlot formats a slot string for the busy map.
func BusySlot(day, start, end string) string {
	return fmt.Sprintf("%s %s-%s", day, start, end)
}

// Absorb appends one slot per class period with a named teacher. Days are
// walked in week order and periods in schedule order. Nothing is
// de-duplicated.
func (b TeacherBusy) Absorb(s ClassSchedule) int {
	added := 0
	for _, day := range s.Days() {
		for _, p := range s[day] {
			if p.Type != PeriodClass {
				continue
			}
			teacher := p.Teacher()
			if teacher == "" {
				continue
			}
			b[teacher] = append(b[teacher], BusySlot(day, p.Start, p.End))
			added++
		}
	}
	return added
}

// Clone returns a deep copy so callers can hand out a snapshot.
func (b TeacherBusy) Clone() TeacherBusy {
	out := make(TeacherBusy, len(b))
	for k, v := range b {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Slots returns the total number of recorded slots.
func (b TeacherBusy) Slots() int {
	n := 0
	for _, v := range b {
		n += len(v)
	}
	return n
}
