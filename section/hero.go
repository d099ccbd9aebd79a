package section

import (
	"math"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/termfolio/content"
	"github.com/lixenwraith/termfolio/core"
	"github.com/lixenwraith/termfolio/effect"
	"github.com/lixenwraith/termfolio/render"
)

// Hero layout constants
const (
	heroSplitWidth  = 72 // Two columns from this width
	heroFloatAmp    = 1.0
	heroFloatPeriod = 4 * time.Second
	heroBioWidth    = 56
)

// Hero is the landing page: greeting, typed headline, bio and avatar
type Hero struct {
	base
	data  content.Hero
	typer *effect.Typewriter
	float *effect.Float
}

// NewHero creates the landing page
func NewHero(env Env, c *content.Content) *Hero {
	env = env.normalize()
	h := &Hero{
		base:  base{env: env},
		typer: effect.NewTypewriter("", effect.TypewriterOptions{}),
		float: effect.NewFloat(env.FPS, heroFloatAmp, heroFloatPeriod),
	}
	h.SetContent(c)
	return h
}

func (h *Hero) Section() core.Section { return core.SectionHome }

func (h *Hero) SetContent(c *content.Content) {
	if c == nil {
		return
	}
	h.data = c.Hero
	h.typer.SetText(c.Hero.Headline)
}

// Typed returns the visible part of the headline
func (h *Hero) Typed() string { return h.typer.Visible() }

func (h *Hero) Step(dt time.Duration) {
	h.typer.Step(dt)
	h.float.Step(dt)
}

func (h *Hero) Draw(c *render.Canvas) {
	th := h.env.Theme
	w, ht := c.Size()
	if w < 10 || ht < 4 {
		return
	}

	left := render.Rect{X: 2, Y: 1, W: w - 4, H: ht - 2}
	var right render.Rect
	if w >= heroSplitWidth {
		left.W = w*3/5 - 2
		right = render.Rect{X: w * 3 / 5, Y: 1, W: w*2/5 - 2, H: ht - 2}
	}

	col := c.Sub(left)
	y := 0
	if h.data.Greeting != "" {
		pill(col, 0, y, h.data.Greeting, th.On(th.Fg).Bold(true))
		y += 2
	}

	lw, _ := col.Size()
	lines := render.Wrap(h.typer.Visible(), lw-1)
	if len(lines) == 0 {
		lines = []string{""}
	}
	for _, line := range lines {
		col.Text(0, y, line, th.On(th.Accent).Bold(true))
		y++
	}
	if h.typer.CursorOn() {
		col.Set(runewidth.StringWidth(lines[len(lines)-1]), y-1, '▌', th.On(th.Accent))
	}
	y++

	for _, line := range render.Wrap(h.data.Bio, min(lw, heroBioWidth)) {
		if y >= left.H {
			break
		}
		col.Text(0, y, line, th.On(th.Muted))
		y++
	}

	if !right.Empty() {
		h.drawAvatar(c.Sub(right))
	}
}

// drawAvatar renders a filled disc with initials and a name plate
func (h *Hero) drawAvatar(c *render.Canvas) {
	th := h.env.Theme
	w, ht := c.Size()
	// Cells are roughly twice as tall as wide
	r := min(float64(w)/4, float64(ht-4)/2)
	if r < 3 {
		return
	}
	cx := float64(w) / 2
	cy := float64(ht-3)/2 + h.float.Offset()

	glow := render.Blend(th.Bg, th.Accent, 0.6)
	fill := swatch(h.data.Name, 0.45)
	for y := 0; y < ht-3; y++ {
		for x := 0; x < w; x++ {
			dx := (float64(x) + 0.5 - cx) / 2
			dy := float64(y) + 0.5 - cy
			d := math.Hypot(dx, dy)
			switch {
			case d <= r-1:
				c.Set(x, y, ' ', th.Base().Background(render.FromColorful(fill)))
			case d <= r:
				c.Set(x, y, ' ', th.Base().Background(glow))
			}
		}
	}

	c.Text(int(cx)-runewidth.StringWidth(initials(h.data.Name))/2, int(math.Round(cy)), initials(h.data.Name),
		th.Base().Background(render.FromColorful(fill)).Foreground(th.Fg).Bold(true))

	plate := th.Base().Background(th.Accent).Foreground(th.Bg).Bold(true)
	c.TextRight(ht-2, " "+h.data.Name+" ", plate)
	c.TextRight(ht-1, " "+h.data.Role+" ", plate.Bold(false))
}

func initials(name string) string {
	var b strings.Builder
	for _, f := range strings.Fields(name) {
		for _, r := range f {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}
