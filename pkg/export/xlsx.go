package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kilianp07/skejul/core/grid"
	"github.com/kilianp07/skejul/core/render"
)

// maxSheetName is the longest sheet name Excel accepts.
const maxSheetName = 31

// SheetName turns a class group name into a valid worksheet name.
func SheetName(class string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '_'
		}
		return r
	}, strings.TrimSpace(class))
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	if name == "" {
		name = "Timetable"
	}
	return name
}

// WriteXLSX writes g as a workbook with one sheet named after the class
// group. The first row holds "Day/Time" and the raw slots, each following
// row a day and its cell values unchanged. With a palette, filled cells are
// coloured like the image export.
func WriteXLSX(w io.Writer, g grid.Grid, p *render.Palette) error {
	if len(g.Slots) == 0 && len(g.Days) == 0 {
		return fmt.Errorf("empty grid")
	}
	sheet := SheetName(g.Class)
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	header := make([]any, 0, len(g.Slots)+1)
	header = append(header, "Day/Time")
	for _, s := range g.Slots {
		header = append(header, s)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(g.Slots) + 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", bold); err != nil {
		return err
	}

	fills := map[string]int{}
	for r, day := range g.Days {
		row := r + 2
		values := make([]any, 0, len(g.Slots)+1)
		values = append(values, day)
		for c := range g.Slots {
			values = append(values, g.Cells[r][c])
		}
		start, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, start, &values); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, start, start, bold); err != nil {
			return err
		}
		if p == nil {
			continue
		}
		for c := range g.Slots {
			value := g.Cells[r][c]
			if strings.TrimSpace(value) == "" {
				continue
			}
			id, err := fillStyle(f, fills, p.Color(render.Subject(value)))
			if err != nil {
				return err
			}
			name, err := excelize.CoordinatesToCellName(c+2, row)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, name, name, id); err != nil {
				return err
			}
		}
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 22); err != nil {
		return err
	}
	return f.Write(w)
}

// fillStyle returns a style id for a solid fill, creating it once.
func fillStyle(f *excelize.File, cache map[string]int, color string) (int, error) {
	if id, ok := cache[color]; ok {
		return id, nil
	}
	id, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hex(color)}},
	})
	if err != nil {
		return 0, err
	}
	cache[color] = id
	return id, nil
}

func hex(color string) string { return strings.TrimPrefix(color, "#") }
