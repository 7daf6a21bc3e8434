package state

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var (
	DefaultColor      = color.RGBA{A: 0xff}
	DefaultBackground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// ParseHexColor parses "#rrggbb", or "#aarrggbb" with a leading alpha byte.
func ParseHexColor(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") || (len(s) != 7 && len(s) != 9) {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	a := uint8(0xff)
	if len(s) == 9 {
		a = uint8(v >> 24)
	}
	c := color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: a}
	return color.RGBAModel.Convert(c).(color.RGBA), nil
}

// HexString formats an opaque color as "#rrggbb".
func HexString(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
