package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/termfolio/vmath"
)

// ToColorful converts a tcell colour, ok is false for default or palette-less colours
func ToColorful(c tcell.Color) (colorful.Color, bool) {
	if c == tcell.ColorDefault || !c.Valid() {
		return colorful.Color{}, false
	}
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return colorful.Color{}, false
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, true
}

// FromColorful converts back to an RGB tcell colour
func FromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Blend mixes src over dst with the given alpha
// Unresolvable colours fall back to whichever side dominates
func Blend(dst, src tcell.Color, alpha float64) tcell.Color {
	alpha = vmath.Clamp(0, 1, alpha)
	d, okD := ToColorful(dst)
	s, okS := ToColorful(src)
	switch {
	case !okD && !okS:
		return dst
	case !okD:
		if alpha >= 0.5 {
			return src
		}
		return dst
	case !okS:
		return dst
	}
	return FromColorful(d.BlendRgb(s, alpha))
}

// Fade pulls fg toward bg as opacity falls, used for translucent cards
func Fade(fg, bg tcell.Color, opacity float64) tcell.Color {
	return Blend(bg, fg, opacity)
}

// Hex parses a #rrggbb colour, returning def on malformed input
func Hex(s string, def tcell.Color) tcell.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return def
	}
	return FromColorful(c)
}
