package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kilianp07/skejul/core/grid"
	"github.com/kilianp07/skejul/core/logger"
	"github.com/kilianp07/skejul/core/model"
	"github.com/kilianp07/skejul/core/render"
	"github.com/kilianp07/skejul/core/report"
)

func sampleGrid() grid.Grid {
	return grid.Grid{
		Class: "JSS 1/A",
		Days:  []string{"Monday", "Tuesday"},
		Slots: []string{"08:00 AM - 08:40 AM", "08:40 AM - 09:00 AM"},
		Cells: [][]string{
			{"Mathematics", "Break"},
			{"Agricultural Science", ""},
		},
	}
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "JSS_1_A", SafeName(" JSS 1/A "))
	assert.Equal(t, "SS3", SafeName("SS3"))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleGrid()))
	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"Day/Time", "08:00 AM - 08:40 AM", "08:40 AM - 09:00 AM"}, recs[0])
	assert.Equal(t, []string{"Tuesday", "Agricultural Science", ""}, recs[2])
}

func TestWriteXLSX(t *testing.T) {
	g := sampleGrid()
	g.Cells[0][0] = "Christian Religious Studies"
	palette := render.NewPalette(1)
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, g, palette))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	sheet := "JSS 1_A"
	assert.Equal(t, []string{sheet}, f.GetSheetList())

	cells := map[string]string{
		"A1": "Day/Time",
		"B1": "08:00 AM - 08:40 AM",
		"A2": "Monday",
		"B2": "Christian Religious Studies",
		"C2": "Break",
		"B3": "Agricultural Science",
		"C3": "",
	}
	for name, want := range cells {
		got, err := f.GetCellValue(sheet, name)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}

	id, err := f.GetCellStyle(sheet, "C2")
	require.NoError(t, err)
	style, err := f.GetStyle(id)
	require.NoError(t, err)
	require.Len(t, style.Fill.Color, 1)
	assert.True(t, strings.EqualFold(strings.TrimPrefix(palette.Color("Break"), "#"), style.Fill.Color[0]), style.Fill.Color[0])
}

func TestWriteXLSXWithoutColors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleGrid(), nil))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	id, err := f.GetCellStyle("JSS 1_A", "B2")
	require.NoError(t, err)
	assert.Zero(t, id)
}

func TestWriteXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteXLSX(&buf, grid.Grid{}, nil))
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "SS 3_Science", SheetName("SS 3/Science"))
	assert.Equal(t, "Timetable", SheetName("  "))
	assert.Len(t, []rune(SheetName(strings.Repeat("x", 40))), 31)
}

func TestWriterExportClass(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(Options{Dir: dir, UseColors: true, Seed: 7}, logger.NopLogger{})
	files, err := w.ExportClass(sampleGrid())
	require.NoError(t, err)
	require.Len(t, files, 3)
	for _, ext := range []string{"png", "csv", "xlsx"} {
		path := filepath.Join(dir, "JSS_1_A_timetable."+ext)
		info, err := os.Stat(path)
		require.NoError(t, err, ext)
		assert.Positive(t, info.Size(), ext)
	}
}

func TestWriterUnknownFormatContinues(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(Options{Dir: dir, Formats: []string{"pdf", "csv"}}, nil)
	files, err := w.ExportClass(sampleGrid())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdf")
	assert.Equal(t, []string{filepath.Join(dir, "JSS_1_A_timetable.csv")}, files)
}

func TestExportSummaryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	tt := model.ClassTimetables{
		"JSS 1": {"monday": {{PeriodNo: 1, Start: "8:00", End: "8:40", Type: "Class", Subject: &model.SubjectSlot{Name: "Maths", TeacherName: "Mr. A"}}}},
	}
	w := NewWriter(Options{Dir: dir}, nil)
	files, err := w.ExportSummary(tt, report.BuildTeacherTimetables(tt), report.Build(tt, nil))
	require.NoError(t, err)
	require.Len(t, files, 3)

	b, err := os.ReadFile(filepath.Join(dir, "class_timetables.json"))
	require.NoError(t, err)
	back, err := ReadClassTimetables(strings.NewReader(string(b)))
	require.NoError(t, err)
	entries := back["JSS 1"]["Monday"]
	require.Len(t, entries, 1)
	assert.Equal(t, model.PeriodClass, entries[0].Type)
	assert.Equal(t, "Mr. A", entries[0].Teacher())
}
