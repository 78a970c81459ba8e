package utils

import (
	"fmt"
	"image/color"

	"github.com/mazznoer/csscolorparser"
)

// ParseColor turns a CSS-style color spec ("white", "#ff8800",
// "rgb(255,165,0)") into a color.Color.
func ParseColor(spec string) (color.Color, error) {
	c, err := csscolorparser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", spec, err)
	}
	r, g, b, a := c.RGBA255()
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
