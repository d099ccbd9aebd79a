package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Rect is a cell rectangle
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle covers no cells
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether the cell lies inside
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Inset shrinks by n on every side
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
}

// Intersect returns the overlap of two rectangles
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Canvas draws into a clipped, translated region of a tcell screen
type Canvas struct {
	screen tcell.Screen
	// area in screen coordinates; local (0,0) maps to area.X, area.Y
	area Rect
}

// NewCanvas covers the whole screen
func NewCanvas(s tcell.Screen) *Canvas {
	w, h := s.Size()
	return &Canvas{screen: s, area: Rect{W: w, H: h}}
}

// Screen returns the underlying screen
func (c *Canvas) Screen() tcell.Screen { return c.screen }

// Size returns the local width and height
func (c *Canvas) Size() (int, int) { return c.area.W, c.area.H }

// Bounds returns the local rectangle
func (c *Canvas) Bounds() Rect { return Rect{W: c.area.W, H: c.area.H} }

// Area returns the region in screen coordinates
func (c *Canvas) Area() Rect { return c.area }

// Sub returns a canvas over r, given in local coordinates and clipped to c
func (c *Canvas) Sub(r Rect) *Canvas {
	abs := Rect{X: c.area.X + r.X, Y: c.area.Y + r.Y, W: r.W, H: r.H}
	return &Canvas{screen: c.screen, area: abs.Intersect(c.area)}
}

func (c *Canvas) abs(x, y int) (int, int, bool) {
	if x < 0 || y < 0 || x >= c.area.W || y >= c.area.H {
		return 0, 0, false
	}
	return c.area.X + x, c.area.Y + y, true
}

// Set writes one cell, ignoring out-of-bounds coordinates
func (c *Canvas) Set(x, y int, ch rune, st tcell.Style) {
	if ax, ay, ok := c.abs(x, y); ok {
		c.screen.SetContent(ax, ay, ch, nil, st)
	}
}

// Cell reads one cell back
func (c *Canvas) Cell(x, y int) (rune, tcell.Style, bool) {
	ax, ay, ok := c.abs(x, y)
	if !ok {
		return 0, tcell.StyleDefault, false
	}
	ch, _, st, _ := c.screen.GetContent(ax, ay)
	return ch, st, true
}

// Text writes s from (x, y) and returns the columns consumed
// Wide runes that would straddle the right edge are dropped
func (c *Canvas) Text(x, y int, s string, st tcell.Style) int {
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > c.area.W {
			break
		}
		c.Set(col, y, r, st)
		col += w
	}
	return col - x
}

// TextCenter writes s centred on row y
func (c *Canvas) TextCenter(y int, s string, st tcell.Style) int {
	w := runewidth.StringWidth(s)
	return c.Text((c.area.W-w)/2, y, s, st)
}

// TextRight writes s ending at the right edge
func (c *Canvas) TextRight(y int, s string, st tcell.Style) int {
	return c.Text(c.area.W-runewidth.StringWidth(s), y, s, st)
}

// Fill paints r with ch
func (c *Canvas) Fill(r Rect, ch rune, st tcell.Style) {
	r = r.Intersect(c.Bounds())
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c.Set(x, y, ch, st)
		}
	}
}

// Clear paints the whole canvas with st
func (c *Canvas) Clear(st tcell.Style) {
	c.Fill(c.Bounds(), ' ', st)
}

// Box draws a rounded border around r with an optional title
func (c *Canvas) Box(r Rect, st tcell.Style, title string) {
	if r.W < 2 || r.H < 2 {
		return
	}
	x1, y1 := r.X+r.W-1, r.Y+r.H-1
	for x := r.X + 1; x < x1; x++ {
		c.Set(x, r.Y, '─', st)
		c.Set(x, y1, '─', st)
	}
	for y := r.Y + 1; y < y1; y++ {
		c.Set(r.X, y, '│', st)
		c.Set(x1, y, '│', st)
	}
	c.Set(r.X, r.Y, '╭', st)
	c.Set(x1, r.Y, '╮', st)
	c.Set(r.X, y1, '╰', st)
	c.Set(x1, y1, '╯', st)

	if title != "" && r.W > 4 {
		title = Truncate(" "+title+" ", r.W-4)
		c.Text(r.X+2, r.Y, title, st)
	}
}

// Tint blends col over the cell at (x, y), keeping its rune
func (c *Canvas) Tint(x, y int, col tcell.Color, alpha float64) {
	ch, st, ok := c.Cell(x, y)
	if !ok || alpha <= 0 {
		return
	}
	fg, bg, _ := st.Decompose()
	st = st.Background(Blend(bg, col, alpha)).Foreground(Blend(fg, col, alpha*0.5))
	if ch == 0 {
		ch = ' '
	}
	c.Set(x, y, ch, st)
}

// --- Text helpers ---

// Truncate shortens s to width columns with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// Wrap breaks s into lines no wider than width, splitting on spaces and
// hard-breaking words that are longer than a line
func Wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		var line strings.Builder
		lineW := 0
		flush := func() {
			lines = append(lines, line.String())
			line.Reset()
			lineW = 0
		}
		for _, word := range strings.Fields(para) {
			ww := runewidth.StringWidth(word)
			for ww > width {
				if lineW > 0 {
					flush()
				}
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					// Single rune wider than the line
					head = string([]rune(word)[:1])
				}
				line.WriteString(head)
				flush()
				word = strings.TrimPrefix(word, head)
				ww = runewidth.StringWidth(word)
			}
			if ww == 0 {
				continue
			}
			switch {
			case lineW == 0:
			case lineW+1+ww <= width:
				line.WriteByte(' ')
				lineW++
			default:
				flush()
			}
			line.WriteString(word)
			lineW += ww
		}
		flush()
	}
	return lines
}
