package render

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontSize is the body text size in points.
const DefaultFontSize = 11

const (
	cellPadding  = 10.0
	minCellWidth = 90.0
	lineSpacing  = 1.35
	borderColor  = "#555555"
)

var (
	fontOnce    sync.Once
	regularFont *truetype.Font
	boldFont    *truetype.Font
	fontErr     error
)

func loadFonts() error {
	fontOnce.Do(func() {
		if regularFont, fontErr = truetype.Parse(goregular.TTF); fontErr != nil {
			return
		}
		boldFont, fontErr = truetype.Parse(gobold.TTF)
	})
	return fontErr
}

func face(bold bool, size float64) font.Face {
	f := regularFont
	if bold {
		f = boldFont
	}
	return truetype.NewFace(f, &truetype.Options{Size: size})
}

// WritePNG draws the table with its title and encodes it as PNG.
func (t Table) WritePNG(w io.Writer, fontSize float64) error {
	if len(t.Rows) == 0 {
		return fmt.Errorf("empty table")
	}
	if err := loadFonts(); err != nil {
		return fmt.Errorf("load fonts: %w", err)
	}
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	body := face(false, fontSize)
	bold := face(true, fontSize)
	title := face(true, fontSize*1.6)

	widths, heights := t.measure(body, bold)
	titleHeight := fontSize * 4
	width := sum(widths) + 2*cellPadding
	height := titleHeight + sum(heights) + 2*cellPadding

	dc := gg.NewContext(int(math.Ceil(width)), int(math.Ceil(height)))
	dc.SetHexColor(plainFill)
	dc.Clear()

	dc.SetFontFace(title)
	dc.SetHexColor(darkText)
	dc.DrawStringAnchored(t.Title, width/2, titleHeight/2, 0.5, 0.5)

	y := titleHeight
	for r, row := range t.Rows {
		x := cellPadding
		for c, cell := range row {
			cw, ch := widths[c], heights[r]
			dc.DrawRectangle(x, y, cw, ch)
			dc.SetHexColor(cell.Fill)
			dc.FillPreserve()
			dc.SetHexColor(borderColor)
			dc.SetLineWidth(1)
			dc.Stroke()

			if cell.Bold {
				dc.SetFontFace(bold)
			} else {
				dc.SetFontFace(body)
			}
			dc.SetHexColor(cell.TextColor)
			lines := strings.Split(cell.Text, "\n")
			lh := dc.FontHeight() * lineSpacing
			top := y + ch/2 - lh*float64(len(lines)-1)/2
			for i, line := range lines {
				dc.DrawStringAnchored(line, x+cw/2, top+float64(i)*lh, 0.5, 0.5)
			}
			x += cw
		}
		y += heights[r]
	}
	return dc.EncodePNG(w)
}

// measure computes column widths and row heights large enough for every
// line of every cell.
func (t Table) measure(body, bold font.Face) ([]float64, []float64) {
	dc := gg.NewContext(1, 1)
	cols := 0
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	widths := make([]float64, cols)
	heights := make([]float64, len(t.Rows))
	for r, row := range t.Rows {
		for c, cell := range row {
			if cell.Bold {
				dc.SetFontFace(bold)
			} else {
				dc.SetFontFace(body)
			}
			lines := strings.Split(cell.Text, "\n")
			for _, line := range lines {
				lw, _ := dc.MeasureString(line)
				widths[c] = math.Max(widths[c], lw+2*cellPadding)
			}
			h := dc.FontHeight()*lineSpacing*float64(len(lines)) + 2*cellPadding
			heights[r] = math.Max(heights[r], h)
		}
	}
	for i := range widths {
		widths[i] = math.Max(widths[i], minCellWidth)
	}
	return widths, heights
}

func sum(v []float64) float64 {
	total := 0.0
	for _, x := range v {
		total += x
	}
	return total
}
