// Package export writes timetables to disk as CSV, spreadsheet, image and
// JSON files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kilianp07/skejul/core/grid"
	"github.com/kilianp07/skejul/core/model"
)

// WriteJSON writes v to w as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ReadClassTimetables decodes a class_timetables.json document.
func ReadClassTimetables(r io.Reader) (model.ClassTimetables, error) {
	var tt model.ClassTimetables
	if err := json.NewDecoder(r).Decode(&tt); err != nil {
		return nil, fmt.Errorf("decode class timetables: %w", err)
	}
	for name, sched := range tt {
		tt[name] = sched.Normalize()
	}
	return tt, nil
}

// WriteCSV writes g with a leading Day/Time column and one column per slot.
func WriteCSV(w io.Writer, g grid.Grid) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"Day/Time"}, g.Slots...)); err != nil {
		return err
	}
	for _, row := range g.Rows() {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SafeName turns a class name into a file name stem.
func SafeName(name string) string {
	r := strings.NewReplacer(" ", "_", "/", "_", "\\", "_")
	return r.Replace(strings.TrimSpace(name))
}
