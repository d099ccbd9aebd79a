package section

import (
	"fmt"

	"github.com/lixenwraith/termfolio/content"
	"github.com/lixenwraith/termfolio/core"
	"github.com/lixenwraith/termfolio/render"
)

// Header is the top bar: name on the left, numbered section tabs on the right
type Header struct {
	theme render.Theme
	name  string
	tabs  [core.SectionCount]render.Rect
}

// NewHeader creates the top bar
func NewHeader(theme render.Theme, c *content.Content) *Header {
	h := &Header{theme: theme}
	h.SetContent(c)
	return h
}

// SetContent picks the display name
func (h *Header) SetContent(c *content.Content) {
	if c != nil {
		h.name = c.Hero.Name
	}
}

// Draw renders one row, highlighting the active tab
func (h *Header) Draw(c *render.Canvas, active core.Section) {
	th := h.theme
	w, _ := c.Size()
	c.Fill(render.Rect{W: w, H: 1}, ' ', th.Base())
	c.Text(1, 0, h.name, th.On(th.Fg).Bold(true))

	labels := make([]string, core.SectionCount)
	total := 0
	for _, s := range core.Sections() {
		labels[s] = fmt.Sprintf(" %d %s ", int(s)+1, s)
		total += len(labels[s]) + 1
	}

	x := w - total
	if floor := len(h.name) + 3; x < floor {
		// Narrow screens drop the labels down to numbers
		total = 0
		for _, s := range core.Sections() {
			labels[s] = fmt.Sprintf(" %d ", int(s)+1)
			total += len(labels[s]) + 1
		}
		x = w - total
	}
	for _, s := range core.Sections() {
		st := th.On(th.Fg).Bold(true)
		if s == active {
			st = th.Base().Background(th.Accent).Foreground(th.Bg).Bold(true)
		}
		n := c.Text(x, 0, labels[s], st)
		h.tabs[s] = render.Rect{X: x, Y: 0, W: n, H: 1}
		x += n + 1
	}
}

// HitTab maps a click on the header row to a section
func (h *Header) HitTab(x, y int) (core.Section, bool) {
	for s, r := range h.tabs {
		if r.Contains(x, y) {
			return core.Section(s), true
		}
	}
	return 0, false
}

// Footer is the bottom bar: owner, socials, copyright and key hints
type Footer struct {
	theme render.Theme
	data  content.Footer
	links []content.Social
}

// NewFooter creates the bottom bar
func NewFooter(theme render.Theme, c *content.Content) *Footer {
	f := &Footer{theme: theme}
	f.SetContent(c)
	return f
}

// SetContent swaps the footer text
func (f *Footer) SetContent(c *content.Content) {
	if c != nil {
		f.data = c.Footer
		f.links = c.Contact.Socials
	}
}

// Draw renders two rows: a dashed rule with credits, then the key hints
func (f *Footer) Draw(c *render.Canvas, hints string) {
	th := f.theme
	w, h := c.Size()
	if h < 2 {
		c.Text(0, 0, render.Truncate(hints, w), th.On(th.Muted))
		return
	}

	rule := th.On(th.Accent)
	for x := 0; x < w; x++ {
		c.Set(x, 0, '╌', rule)
	}
	c.Text(1, 0, " "+f.data.Owner+" ", th.On(th.Fg).Bold(true))
	x := 1 + len([]rune(f.data.Owner)) + 3
	for _, l := range f.links {
		x += c.Text(x, 0, " "+l.Name+" ", rule) + 1
	}
	c.TextRight(0, " "+f.data.Copyright+" ", th.On(th.Muted))

	c.Fill(render.Rect{Y: 1, W: w, H: 1}, ' ', th.Base())
	c.Text(1, 1, render.Truncate(hints, w-2), th.On(th.Muted))
}
