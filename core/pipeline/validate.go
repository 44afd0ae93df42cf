package pipeline

import (
	"fmt"
	"strings"

	"github.com/kilianp07/skejul/core/model"
)

// Messages reported for missing fields.
const (
	MissingDays       = "school days"
	MissingTimes      = "school start/end time"
	MissingPeriods    = "named periods (e.g., breaks, assembly)"
	MissingGroups     = "class groups"
	MissingEverything = "missing timetable data entirely"
)

// Validate returns the messages for every required field absent from d, in
// a fixed order. A nil d yields a single message.
func Validate(d *model.TimetableData) []string {
	if d == nil {
		return []string{MissingEverything}
	}
	var missing []string
	if len(d.Days) == 0 {
		missing = append(missing, MissingDays)
	}
	if strings.TrimSpace(d.StartTime) == "" || strings.TrimSpace(d.EndTime) == "" {
		missing = append(missing, MissingTimes)
	}
	if len(d.Periods) == 0 {
		missing = append(missing, MissingPeriods)
	}
	if len(d.ClassGroups) == 0 {
		missing = append(missing, MissingGroups)
	}
	return missing
}

// GroupNames returns the class group names in extraction order. Blank
// names become "Group N" and repeated names keep their first occurrence.
func GroupNames(d *model.TimetableData) []string {
	if d == nil {
		return nil
	}
	seen := map[string]bool{}
	out := make([]string, 0, len(d.ClassGroups))
	for i := range d.ClassGroups {
		name := strings.TrimSpace(d.ClassGroups[i].Name)
		if name == "" {
			name = fmt.Sprintf("Group %d", i+1)
			d.ClassGroups[i].Name = name
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
