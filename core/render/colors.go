package render

import (
	"math/rand"
	"strings"
	"sync"
)

// EmptyColor fills cells without a value.
const EmptyColor = "#E8E8E8"

var fixedColors = map[string]string{
	"assembly": "#FF6B6B",
	"break":    "#4ECDC4",
	"lunch":    "#45B7D1",
	"activity": "#96CEB4",
}

// Pastels is the palette used for subjects without a fixed colour.
var Pastels = []string{
	"#FFEAA7", "#DDA0DD", "#79B3A5", "#F7DC6F", "#AED6F1",
	"#F8C471", "#D7BDE2", "#A9DFBF", "#FAD7A0", "#F5B7B1",
	"#D5A6BD", "#AED6F1", "#A3E4D7", "#F9E79F", "#D2B4DE",
	"#85C1E9", "#82E0AA", "#F8D7DA", "#D1ECF1", "#FFF3CD",
	"#E2E3E5", "#D4E6F1", "#D5F4E6", "#FCF3CF", "#FADBD8",
}

// Palette hands out a stable colour per subject name.
type Palette struct {
	mu       sync.Mutex
	rnd      *rand.Rand
	assigned map[string]string
}

// NewPalette returns a palette whose random picks are driven by seed.
func NewPalette(seed int64) *Palette {
	return &Palette{
		rnd:      rand.New(rand.NewSource(seed)),
		assigned: make(map[string]string),
	}
}

// Color returns the colour for subject. Fixed period names always get their
// reserved colour; other subjects keep the first colour picked for them.
func (p *Palette) Color(subject string) string {
	name := strings.TrimSpace(subject)
	if name == "" {
		return EmptyColor
	}
	if c, ok := fixedColors[strings.ToLower(name)]; ok {
		return c
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.assigned[name]; ok {
		return c
	}
	c := Pastels[p.rnd.Intn(len(Pastels))]
	p.assigned[name] = c
	return c
}
