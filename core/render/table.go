// Package render lays out class grids as styled tables and draws them as
// PNG images.
package render

import (
	"strings"

	"github.com/kilianp07/skejul/core/grid"
)

const (
	headerFill  = "#2C3E50"
	dayFill     = "#34495E"
	plainFill   = "#FFFFFF"
	lightText   = "#FFFFFF"
	darkText    = "#000000"
	cornerLabel = "Day/Time"
)

// Options controls table layout.
type Options struct {
	UseColors     bool
	AbbreviateMax int
}

// Cell is one styled table cell.
type Cell struct {
	Text      string
	Fill      string
	TextColor string
	Bold      bool
}

// Table is a titled grid of cells. Row 0 is the header row and column 0
// the day column.
type Table struct {
	Title string
	Rows  [][]Cell
}

// Title returns the image title for a class.
func Title(class string) string { return class + " - Weekly Timetable" }

// BuildTable styles g. Subjects are coloured through p when colours are
// enabled; p may be nil otherwise.
func BuildTable(g grid.Grid, p *Palette, opt Options) Table {
	rows := make([][]Cell, 0, len(g.Days)+1)

	header := []Cell{headerCell(cornerLabel, opt.UseColors)}
	for _, s := range g.Slots {
		header = append(header, headerCell(FormatHeader(s), opt.UseColors))
	}
	rows = append(rows, header)

	for r, day := range g.Days {
		row := []Cell{dayCell(day, opt.UseColors)}
		for c := range g.Slots {
			value := g.Cells[r][c]
			cell := Cell{Text: FormatCell(value, opt.AbbreviateMax), Fill: plainFill, TextColor: darkText}
			if opt.UseColors && p != nil {
				cell.Fill = p.Color(Subject(value))
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	return Table{Title: Title(g.Class), Rows: rows}
}

// FormatHeader breaks a "<start> - <end>" slot over two lines.
func FormatHeader(slot string) string {
	if a, b, ok := strings.Cut(slot, " - "); ok {
		return a + " -\n" + b
	}
	return slot
}

// Subject returns the text before an opening parenthesis, trimmed.
func Subject(value string) string {
	s, _, _ := strings.Cut(value, "(")
	return strings.TrimSpace(s)
}

// FormatCell abbreviates the subject part of value and splits two word
// abbreviations over two lines. Any parenthesised suffix moves to its own
// line.
func FormatCell(value string, max int) string {
	subject := Subject(value)
	if subject == "" {
		return strings.TrimSpace(value)
	}
	short := Abbreviate(subject, max)
	if words := strings.Fields(short); len(words) == 2 {
		short = words[0] + "\n" + words[1]
	}
	if _, rest, ok := strings.Cut(value, "("); ok {
		return short + "\n(" + strings.TrimSpace(rest)
	}
	return short
}

func headerCell(text string, colors bool) Cell {
	if colors {
		return Cell{Text: text, Fill: headerFill, TextColor: lightText, Bold: true}
	}
	return Cell{Text: text, Fill: plainFill, TextColor: darkText, Bold: true}
}

func dayCell(text string, colors bool) Cell {
	if colors {
		return Cell{Text: text, Fill: dayFill, TextColor: lightText, Bold: true}
	}
	return Cell{Text: text, Fill: plainFill, TextColor: darkText, Bold: true}
}
