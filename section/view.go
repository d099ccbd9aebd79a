package section

import (
	"hash/fnv"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/lixenwraith/termfolio/audio"
	"github.com/lixenwraith/termfolio/content"
	"github.com/lixenwraith/termfolio/core"
	"github.com/lixenwraith/termfolio/render"
)

// revealPixelsPerRow converts entrance offsets from layout pixels to rows
const revealPixelsPerRow = 12.0

// View is one page of the portfolio
type View interface {
	Section() core.Section
	// SetContent swaps the static text; called on load and on reload
	SetContent(c *content.Content)
	// Enter is called every time the page becomes active
	Enter()
	Step(dt time.Duration)
	Draw(c *render.Canvas)
	HandleKey(ev *tcell.EventKey) bool
	// HandleMouse receives coordinates local to the last drawn canvas
	HandleMouse(ev *tcell.EventMouse, x, y int) bool
	// Capturing reports whether the page wants every key, including global ones
	Capturing() bool
}

// Env carries the collaborators shared by every page
type Env struct {
	Theme render.Theme
	Log   *zap.Logger
	Cues  audio.Cues
	FPS   int
}

func (e Env) normalize() Env {
	if e.Log == nil {
		e.Log = zap.NewNop()
	}
	if e.Cues == nil {
		e.Cues = audio.Silent{}
	}
	if e.FPS <= 0 {
		e.FPS = 60
	}
	return e
}

// base supplies no-op input handling
type base struct {
	env Env
}

func (b *base) Enter() {}
func (b *base) Step(time.Duration) {}
func (b *base) HandleKey(*tcell.EventKey) bool { return false }
func (b *base) HandleMouse(*tcell.EventMouse, int, int) bool { return false }
func (b *base) Capturing() bool { return false }

// --- Drawing helpers ---

// heading draws a centred two-tone title, returns the next free row
func heading(c *render.Canvas, y int, plain, accent string, th render.Theme) int {
	title := plain
	if accent != "" {
		title += " " + accent
	}
	w, _ := c.Size()
	x := (w - runewidth.StringWidth(title)) / 2
	x += c.Text(x, y, plain, th.On(th.Fg).Bold(true))
	if accent != "" {
		x += c.Text(x, y, " ", th.Base())
		c.Text(x, y, accent, th.On(th.Accent).Bold(true))
	}
	return y + 1
}

// pill draws " text " with a rounded frame on one row and returns its width
func pill(c *render.Canvas, x, y int, text string, st tcell.Style) int {
	n := c.Text(x, y, "(", st)
	n += c.Text(x+n, y, " "+text+" ", st)
	n += c.Text(x+n, y, ")", st)
	return n
}

// swatch derives a stable colour from a key, used in place of remote images
func swatch(key string, lightness float64) colorful.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	hue := float64(h.Sum32()%360) + 0.5
	return colorful.Hcl(hue, 0.35, lightness).Clamped()
}

// revealStyle fades a style toward the page background by opacity
func revealStyle(th render.Theme, fg tcell.Color, opacity float64) tcell.Style {
	return th.Base().Foreground(render.Fade(fg, th.Bg, opacity))
}

// revealRows converts a pixel offset to whole rows
func revealRows(y float64) int {
	return int(math.Round(y / revealPixelsPerRow))
}
