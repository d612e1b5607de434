package render

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrBadColor is returned for colors that are not #rrggbb or #rgb.
var ErrBadColor = errors.New("color is not a hex triplet")

var (
	backgroundColor = color.RGBA{0x1a, 0x1a, 0x2e, 0xff}
	wallFill        = color.RGBA{0x0f, 0x34, 0x60, 0xff}
	wallStroke      = color.RGBA{0xe9, 0x45, 0x60, 0xff}
	pelletColor     = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	powerPellet     = color.RGBA{0x8b, 0x5c, 0xf6, 0xff}
	powerUpColor    = color.RGBA{0xa8, 0x55, 0xf7, 0xff}
	labelColor      = color.RGBA{0xff, 0xff, 0xff, 0xff}
	fallbackPlayer  = color.RGBA{0xff, 0xff, 0x00, 0xff}
)

// ParseHex parses a CSS-style hex color, #rrggbb or #rgb.
func ParseHex(s string) (color.RGBA, error) {
	if n := len(s); n != 4 && n != 7 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// playerColor is the fill for a player color, falling back to yellow.
func playerColor(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		return fallbackPlayer
	}
	return c
}

// faded scales c by alpha in [0, 1], premultiplied.
func faded(c color.RGBA, alpha float64) color.RGBA {
	if alpha >= 1 {
		return c
	}
	if alpha <= 0 {
		return color.RGBA{}
	}
	scale := func(v uint8) uint8 { return uint8(float64(v) * alpha) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: scale(c.A)}
}
