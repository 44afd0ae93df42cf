package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kilianp07/skejul/core/grid"
	"github.com/kilianp07/skejul/core/logger"
	"github.com/kilianp07/skejul/core/model"
	"github.com/kilianp07/skejul/core/render"
	"github.com/kilianp07/skejul/core/report"
)

// Supported class export formats.
const (
	FormatPNG  = "png"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// DefaultFormats is used when Options.Formats is empty.
var DefaultFormats = []string{FormatPNG, FormatCSV, FormatXLSX}

// Options configures a Writer.
type Options struct {
	Dir           string
	Formats       []string
	UseColors     bool
	AbbreviateMax int
	FontSize      float64
	Seed          int64
}

// Writer exports grids and run summaries into a directory. One palette is
// shared by every class so a subject keeps its colour across files.
type Writer struct {
	opt     Options
	palette *render.Palette
	log     logger.Logger
}

// NewWriter returns a Writer with defaults applied to opt.
func NewWriter(opt Options, log logger.Logger) *Writer {
	if opt.Dir == "" {
		opt.Dir = "."
	}
	if len(opt.Formats) == 0 {
		opt.Formats = DefaultFormats
	}
	if opt.AbbreviateMax <= 0 {
		opt.AbbreviateMax = render.DefaultAbbreviateMax
	}
	if opt.FontSize <= 0 {
		opt.FontSize = render.DefaultFontSize
	}
	return &Writer{opt: opt, palette: render.NewPalette(opt.Seed), log: logger.OrNop(log)}
}

// fills returns the palette for spreadsheet cells, or nil when colours are
// off.
func (w *Writer) fills() *render.Palette {
	if !w.opt.UseColors {
		return nil
	}
	return w.palette
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.opt.Dir }

// ExportClass writes g in every configured format. A failing format is
// logged and the remaining ones are still written; the returned error joins
// every failure.
func (w *Writer) ExportClass(g grid.Grid) ([]string, error) {
	if err := os.MkdirAll(w.opt.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	table := render.BuildTable(g, w.palette, render.Options{UseColors: w.opt.UseColors, AbbreviateMax: w.opt.AbbreviateMax})
	stem := SafeName(g.Class) + "_timetable"

	var files []string
	var errs []error
	for _, format := range w.opt.Formats {
		var write func(io.Writer) error
		switch format {
		case FormatPNG:
			write = func(out io.Writer) error { return table.WritePNG(out, w.opt.FontSize) }
		case FormatCSV:
			write = func(out io.Writer) error { return WriteCSV(out, g) }
		case FormatXLSX:
			write = func(out io.Writer) error { return WriteXLSX(out, g, w.fills()) }
		default:
			err := fmt.Errorf("unknown export format %q", format)
			w.log.Warnf("export %s: %v", g.Class, err)
			errs = append(errs, err)
			continue
		}
		path := filepath.Join(w.opt.Dir, stem+"."+format)
		if err := writeFile(path, write); err != nil {
			w.log.Errorf("export %s as %s failed: %v", g.Class, format, err)
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		w.log.Infof("saved %s", path)
		files = append(files, path)
	}
	return files, errors.Join(errs...)
}

// ExportSummary writes class_timetables.json, teacher_timetables.json and
// report.json.
func (w *Writer) ExportSummary(tt model.ClassTimetables, teachers report.TeacherTimetables, rep report.Report) ([]string, error) {
	if err := os.MkdirAll(w.opt.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	docs := []struct {
		name string
		v    any
	}{
		{"class_timetables.json", tt},
		{"teacher_timetables.json", teachers},
		{"report.json", rep},
	}
	var files []string
	var errs []error
	for _, d := range docs {
		path := filepath.Join(w.opt.Dir, d.name)
		v := d.v
		if err := writeFile(path, func(out io.Writer) error { return WriteJSON(out, v) }); err != nil {
			w.log.Errorf("export %s failed: %v", d.name, err)
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		files = append(files, path)
	}
	return files, errors.Join(errs...)
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
