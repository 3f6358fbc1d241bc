package overlay

import (
	"fmt"
	"image/color"
)

// DefaultPalette returns the fixed box color cycle. Indexed by the face's
// array position, so a face keeps its color as long as the list order holds.
func DefaultPalette() []color.NRGBA {
	return []color.NRGBA{
		{R: 0x00, G: 0xD9, B: 0xFF, A: 0xFF}, // cyan
		{R: 0xFF, G: 0x5C, B: 0x8A, A: 0xFF}, // pink
		{R: 0x7C, G: 0xFF, B: 0x6B, A: 0xFF}, // green
		{R: 0xFF, G: 0xB1, B: 0x47, A: 0xFF}, // orange
		{R: 0xB0, G: 0x8C, B: 0xFF, A: 0xFF}, // violet
		{R: 0x4D, G: 0xA6, B: 0xFF, A: 0xFF}, // blue
	}
}

// ParsePalette converts "#RRGGBB" strings into palette colors. Invalid
// entries fail loudly so a bad presentation config is caught at startup.
func ParsePalette(hexes []string) ([]color.NRGBA, error) {
	out := make([]color.NRGBA, 0, len(hexes))
	for _, h := range hexes {
		c, err := parseHexColor(h)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func parseHexColor(s string) (color.NRGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid palette color %q: %w", s, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}, nil
}
