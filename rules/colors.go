package rules

import "sync"

var defaultColors = []string{
	"#8f4949",
	"#49628f",
	"#7f498f",
	"#8f7f49",
	"#628f49",
	"#cd1e91",
	"#741ecd",
	"#1e4fcd",
	"#1ecdc7",
	"#1ecd3f",
	"#cdcb1e",
	"#cd681e",
}

// Palette hands out player colors round robin.
type Palette struct {
	mu     sync.Mutex
	colors []string
	index  int
}

// NewPalette returns a palette over colors, or over the default colors when
// none are given.
func NewPalette(colors ...string) *Palette {
	if len(colors) == 0 {
		colors = defaultColors
	}
	return &Palette{colors: colors}
}

// Next returns the next color, wrapping around at the end.
func (p *Palette) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	current := p.colors[p.index]
	p.index = (p.index + 1) % len(p.colors)
	return current
}
