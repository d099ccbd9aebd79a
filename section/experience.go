package section

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termfolio/content"
	"github.com/lixenwraith/termfolio/core"
	"github.com/lixenwraith/termfolio/effect"
	"github.com/lixenwraith/termfolio/render"
)

// featuredMaxWidth caps card width on wide screens
const featuredMaxWidth = 96

// Experience lists featured projects as cards, alternating the swatch side
type Experience struct {
	base
	data   content.Experience
	reveal *effect.Reveal
	offset int // First visible row of the card list
	height int // Rows of the card list at the last draw
}

// NewExperience creates the featured projects page
func NewExperience(env Env, c *content.Content) *Experience {
	e := &Experience{
		base:   base{env: env.normalize()},
		reveal: effect.NewReveal(effect.ExperienceReveal, 0),
	}
	e.SetContent(c)
	return e
}

func (e *Experience) Section() core.Section { return core.SectionExperience }

func (e *Experience) SetContent(c *content.Content) {
	if c == nil {
		return
	}
	e.data = c.Experience
	e.reveal.SetCount(len(c.Experience.Featured))
}

func (e *Experience) Enter() { e.reveal.Trigger() }

func (e *Experience) Step(dt time.Duration) { e.reveal.Step(dt) }

// Offset returns the list scroll position in rows
func (e *Experience) Offset() int { return e.offset }

func (e *Experience) Draw(c *render.Canvas) {
	th := e.env.Theme
	w, h := c.Size()
	if w < 12 || h < 4 {
		return
	}

	plain, accent := splitTitle(e.data.Title)
	y := heading(c, 1, plain, accent, th)
	if e.data.Tagline != "" {
		c.TextCenter(y, e.data.Tagline, th.On(th.Muted))
		y++
	}
	y++

	cw := min(w-4, featuredMaxWidth)
	list := c.Sub(render.Rect{X: (w - cw) / 2, Y: y, W: cw, H: h - y})
	_, lh := list.Size()
	e.height = lh

	row := -e.offset
	for i, f := range e.data.Featured {
		frame := e.reveal.Item(i)
		cardH := e.drawFeatured(list, row+revealRows(frame.Y), i, f, frame.Opacity)
		row += cardH + 1
	}
	e.clampOffset(row + e.offset)
}

// drawFeatured draws one card at row y and returns its height
func (e *Experience) drawFeatured(c *render.Canvas, y, index int, f content.Featured, opacity float64) int {
	th := e.env.Theme
	w, _ := c.Size()
	swW := max(w/3, 8)
	textW := w - swW - 3

	desc := render.Wrap(f.Description, textW-2)
	h := max(len(desc)+5, 6)

	sw, tx := 0, swW+1
	if index%2 == 1 {
		sw, tx = w-swW, 1
	}

	col := render.Fade(render.FromColorful(swatch(f.Title, 0.45)), th.Bg, opacity)
	c.Fill(render.Rect{X: sw, Y: y, W: swW, H: h}, ' ', th.Base().Background(col))

	text := revealStyle(th, th.Muted, opacity)
	c.Text(tx+1, y, f.Title, revealStyle(th, th.Accent, opacity).Bold(true))
	for i, line := range desc {
		c.Text(tx+1, y+2+i, line, text)
	}

	x := tx + 1
	tagRow := y + 3 + len(desc)
	for _, tag := range f.Tags {
		if x+badgeWidth(tag) > tx+textW {
			break
		}
		x += pill(c, x, tagRow, tag, revealStyle(th, th.Accent, opacity*0.8)) + 1
	}
	return h
}

func (e *Experience) clampOffset(total int) {
	limit := max(total-e.height, 0)
	e.offset = min(max(e.offset, 0), limit)
}

func (e *Experience) scroll(rows int) bool {
	e.offset = max(e.offset+rows, 0)
	return true
}

func (e *Experience) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyDown:
		return e.scroll(1)
	case tcell.KeyUp:
		return e.scroll(-1)
	case tcell.KeyPgDn:
		return e.scroll(max(e.height-2, 1))
	case tcell.KeyPgUp:
		return e.scroll(-max(e.height-2, 1))
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'j':
			return e.scroll(1)
		case 'k':
			return e.scroll(-1)
		}
	}
	return false
}

func (e *Experience) HandleMouse(ev *tcell.EventMouse, _, _ int) bool {
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		return e.scroll(-2)
	case ev.Buttons()&tcell.WheelDown != 0:
		return e.scroll(2)
	}
	return false
}
