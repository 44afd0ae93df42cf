package config

import (
	"fmt"

	"github.com/kilianp07/skejul/pkg/export"
)

// OutputConfig controls where and how timetables are written.
type OutputConfig struct {
	Dir     string   `json:"dir"`
	Formats []string `json:"formats"`
	// UseColors defaults to false when unset.
	UseColors     *bool   `json:"use_colors"`
	AbbreviateMax int     `json:"abbreviate_max"`
	FontSize      float64 `json:"font_size"`
	Seed          int64   `json:"seed"`
}

// SetDefaults applies sane defaults.
func (c *OutputConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "output"
	}
	if len(c.Formats) == 0 {
		c.Formats = append([]string(nil), export.DefaultFormats...)
	}
	if c.UseColors == nil {
		off := false
		c.UseColors = &off
	}
	if c.AbbreviateMax <= 0 {
		c.AbbreviateMax = 12
	}
	if c.FontSize <= 0 {
		c.FontSize = 11
	}
}

// Validate rejects unknown formats.
func (c OutputConfig) Validate() error {
	for _, f := range c.Formats {
		switch f {
		case export.FormatPNG, export.FormatCSV, export.FormatXLSX:
		default:
			return fmt.Errorf("unknown format %q", f)
		}
	}
	return nil
}

// Options converts the section into export writer options.
func (c OutputConfig) Options() export.Options {
	return export.Options{
		Dir:           c.Dir,
		Formats:       c.Formats,
		UseColors:     c.UseColors != nil && *c.UseColors,
		AbbreviateMax: c.AbbreviateMax,
		FontSize:      c.FontSize,
		Seed:          c.Seed,
	}
}
