package config

import (
	"fmt"

	"github.com/kilianp07/skejul/core/model"
)

// SchoolConfig holds defaults used when rendering saved timetables.
type SchoolConfig struct {
	// Days are the grid rows when a document carries no day list.
	Days []string `json:"days"`
}

// SetDefaults uses Monday to Friday.
func (c *SchoolConfig) SetDefaults() {
	if len(c.Days) == 0 {
		for _, d := range model.Weekdays {
			c.Days = append(c.Days, string(d))
		}
	}
}

// Validate rejects unknown day names.
func (c SchoolConfig) Validate() error {
	for _, d := range c.Days {
		if _, ok := model.ParseDay(d); !ok {
			return fmt.Errorf("unknown day %q", d)
		}
	}
	return nil
}

// Weekdays returns the configured days in week order.
func (c SchoolConfig) Weekdays() []model.DayOfWeek {
	out := make([]model.DayOfWeek, 0, len(c.Days))
	for _, d := range c.Days {
		if v, ok := model.ParseDay(d); ok {
			out = append(out, v)
		}
	}
	return model.SortDays(out)
}
