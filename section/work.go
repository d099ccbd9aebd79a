package section

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/termfolio/carousel"
	"github.com/lixenwraith/termfolio/config"
	"github.com/lixenwraith/termfolio/content"
	"github.com/lixenwraith/termfolio/core"
	"github.com/lixenwraith/termfolio/frame"
	"github.com/lixenwraith/termfolio/render"
	"github.com/lixenwraith/termfolio/scroll"
	"github.com/lixenwraith/termfolio/tween"
)

// Card stage constants
const (
	cardMinWidth    = 12
	cardMaxWidth    = 28
	cardPerspective = 1000.0 // Viewer distance for the depth pop, in pixels
	stageMinWidth   = 36
	stageMinHeight  = 8
	clickThreshold  = 1 // Cells of travel before a press becomes a drag
)

// --- Surface ---

// CardSurface records the carousel placements and draws them as cards
type CardSurface struct {
	slots   []carousel.Placement
	rects   []render.Rect
	order   []int
	commits int
}

// NewCardSurface creates a surface with n slots
func NewCardSurface(n int) *CardSurface {
	return &CardSurface{
		slots: make([]carousel.Placement, n),
		rects: make([]render.Rect, n),
		order: make([]int, n),
	}
}

func (s *CardSurface) Slots() int { return len(s.slots) }

func (s *CardSurface) Place(slot int, p carousel.Placement) {
	if slot < 0 || slot >= len(s.slots) {
		return
	}
	s.slots[slot] = p
}

func (s *CardSurface) Commit() {
	for i, p := range s.slots {
		if p.Order >= 0 && p.Order < len(s.order) {
			s.order[p.Order] = i
		}
	}
	s.commits++
}

// Placement returns the last placement of slot
func (s *CardSurface) Placement(slot int) carousel.Placement { return s.slots[slot] }

// Commits counts committed frames
func (s *CardSurface) Commits() int { return s.commits }

// Draw paints visible cards back to front around the stage centre
func (s *CardSurface) Draw(c *render.Canvas, th render.Theme) {
	w, h := c.Size()
	cw := min(max(w/5, cardMinWidth), cardMaxWidth)
	ch := min(h, cw*2/3+2)
	cx, cy := float64(w)/2, float64(h)/2

	for i := range s.rects {
		s.rects[i] = render.Rect{}
	}
	for _, slot := range s.order {
		p := s.slots[slot]
		if !p.Visible || p.Pose.Opacity <= 0.02 {
			continue
		}
		r := cardRect(p.Pose, cw, ch, cx, cy)
		s.rects[slot] = r.Intersect(c.Bounds())
		drawCard(c, r, p, th)
	}
}

// HitTest returns the topmost card under (x, y), or -1
func (s *CardSurface) HitTest(x, y int) int {
	for rank := len(s.order) - 1; rank >= 0; rank-- {
		slot := s.order[rank]
		if s.rects[slot].Contains(x, y) {
			return slot
		}
	}
	return -1
}

// cardRect projects a pose: x offset in card widths, scale and depth about
// the card centre, Y rotation foreshortening the width
func cardRect(p carousel.Pose, cw, ch int, cx, cy float64) render.Rect {
	depth := cardPerspective / (cardPerspective - p.Z)
	scale := p.Scale * depth
	centre := cx + p.XPercent/100*float64(cw) + float64(cw)/2
	fw := float64(cw) * scale * math.Abs(math.Cos(p.RotateY*math.Pi/180))
	fh := float64(ch) * scale
	w := max(int(math.Round(fw)), 2)
	h := max(int(math.Round(fh)), 2)
	return render.Rect{
		X: int(math.Round(centre - float64(w)/2)),
		Y: int(math.Round(cy - float64(h)/2)),
		W: w,
		H: h,
	}
}

func drawCard(c *render.Canvas, r render.Rect, p carousel.Placement, th render.Theme) {
	top := render.FromColorful(swatch(p.Item.Key+p.Item.Title, 0.55))
	bottom := render.FromColorful(swatch(p.Item.Key+p.Item.Title, 0.2))
	for y := r.Y; y < r.Y+r.H; y++ {
		t := 0.0
		if r.H > 1 {
			t = float64(y-r.Y) / float64(r.H-1)
		}
		bg := render.Fade(render.Blend(top, bottom, t), th.Bg, p.Pose.Opacity)
		c.Fill(render.Rect{X: r.X, Y: y, W: r.W, H: 1}, ' ', th.Base().Background(bg))
	}

	border := th.Base().Foreground(render.Fade(th.AccentSoft, th.Bg, p.Pose.Opacity*0.8))
	c.Box(r, border, "")

	if r.H >= 3 && r.W >= 4 {
		band := render.Rect{X: r.X + 1, Y: r.Y + r.H - 3, W: r.W - 2, H: 1}
		c.Fill(band, ' ', th.Base().Background(render.Fade(th.Bg, th.Card, p.Pose.Opacity)))
		title := render.Truncate(p.Item.Title, band.W)
		st := th.Base().
			Background(render.Fade(th.Bg, th.Card, p.Pose.Opacity)).
			Foreground(render.Fade(th.Accent, th.Bg, p.Pose.Opacity)).
			Bold(true)
		c.Sub(band).TextCenter(0, title, st)
	}
}

// --- Page ---

// Work hosts the project carousel pinned to a virtual scroll container
type Work struct {
	base
	title string
	cfg   config.Carousel

	surface  *CardSurface
	scroller *scroll.Scroller
	ctrl     *carousel.Controller

	prev, next, stage render.Rect
	list              []render.Rect
	fallback          bool

	pressed  bool
	moved    bool
	pressX   int
	swooshed bool
}

// NewWork builds the carousel over the projects; the item set is fixed for the session
func NewWork(env Env, c *content.Content, sched frame.Scheduler, cfg config.Carousel) (*Work, error) {
	env = env.normalize()
	if c == nil {
		return nil, fmt.Errorf("work: %w", carousel.ErrNoItems)
	}

	items := make([]carousel.Item, len(c.Work.Projects))
	for i, p := range c.Work.Projects {
		items[i] = carousel.Item{Key: fmt.Sprintf("p%d", i), Title: p.Title, Image: p.Image}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("work: %w", carousel.ErrNoItems)
	}

	log := env.Log.With(zap.String("component", "carousel"))
	scroller, err := scroll.New(cfg.ScrollExtent, sched, scroll.Options{
		EndDelay:         cfg.ScrollEndDelay,
		ScrollToDuration: cfg.ScrollToDuration,
		ScrollToEase:     tween.Power2Out,
		Logger:           log,
	})
	if err != nil {
		return nil, fmt.Errorf("work: scroll source: %w", err)
	}

	ease, err := cfg.Ease()
	if err != nil {
		scroller.Close()
		return nil, fmt.Errorf("work: %w", err)
	}

	w := &Work{
		base:     base{env: env},
		title:    c.Work.Title,
		cfg:      cfg,
		surface:  NewCardSurface(len(items)),
		scroller: scroller,
	}
	w.ctrl, err = carousel.New(items, w.surface, scroller, sched,
		carousel.WithStagger(cfg.Stagger),
		carousel.WithDuration(cfg.Duration),
		carousel.WithSettle(cfg.Settle),
		carousel.WithSettleEase(ease),
		carousel.WithDragScale(cfg.DragScale),
		carousel.WithDefaultDirection(cfg.DefaultDirection),
		carousel.WithLogger(log),
		carousel.WithSnapHook(w.onSnap),
	)
	if err != nil {
		scroller.Close()
		return nil, fmt.Errorf("work: %w", err)
	}
	return w, nil
}

func (w *Work) onSnap(int) { w.env.Cues.PlayTick() }

func (w *Work) Section() core.Section { return core.SectionWork }

// SetContent updates the heading only; projects stay fixed while running
func (w *Work) SetContent(c *content.Content) {
	if c != nil {
		w.title = c.Work.Title
	}
}

// Controller exposes the carousel
func (w *Work) Controller() *carousel.Controller { return w.ctrl }

// Scroller exposes the virtual scroll source
func (w *Work) Scroller() *scroll.Scroller { return w.scroller }

// Surface exposes the card surface
func (w *Work) Surface() *CardSurface { return w.surface }

// Fallback reports whether the last draw used the static list
func (w *Work) Fallback() bool { return w.fallback }

// Close releases the carousel and its scroll source
func (w *Work) Close() {
	w.ctrl.Close()
	w.scroller.Close()
	if w.swooshed {
		w.env.Cues.StopSwoosh()
		w.swooshed = false
	}
}

func (w *Work) Draw(c *render.Canvas) {
	th := w.env.Theme
	width, height := c.Size()
	if width < 8 || height < 3 {
		return
	}

	plain, accent := splitTitle(w.title)
	heading(c, 1, plain, accent, th)

	// Prev / next buttons under the heading
	btn := th.Base().Background(th.Card).Foreground(th.Fg).Bold(true)
	mid := width / 2
	w.prev = render.Rect{X: mid - 6, Y: 3, W: 5, H: 1}
	w.next = render.Rect{X: mid + 1, Y: 3, W: 5, H: 1}
	c.Text(w.prev.X, w.prev.Y, "  ◀  ", btn)
	c.Text(w.next.X, w.next.Y, "  ▶  ", btn)

	w.stage = render.Rect{X: 1, Y: 5, W: width - 2, H: height - 6}
	w.fallback = w.stage.W < stageMinWidth || w.stage.H < stageMinHeight
	if w.fallback {
		w.drawList(c.Sub(w.stage))
		return
	}
	w.list = nil
	w.surface.Draw(c.Sub(w.stage), th)
}

// drawList is the static rendering for screens too small for the stage
func (w *Work) drawList(c *render.Canvas) {
	th := w.env.Theme
	cur := w.ctrl.Current()
	items := w.ctrl.Items()
	_, h := c.Size()
	w.list = w.list[:0]
	for i, it := range items {
		if i >= h {
			break
		}
		st := th.On(th.Muted)
		label := "  " + it.Title
		if i == cur {
			st = th.On(th.Accent).Bold(true)
			label = "▸ " + it.Title
		}
		c.Text(0, i, label, st)
		w.list = append(w.list, render.Rect{X: w.stage.X, Y: w.stage.Y + i, W: w.stage.W, H: 1})
	}
}

func (w *Work) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyLeft:
		return w.advance(-1)
	case tcell.KeyRight:
		return w.advance(1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return w.advance(-1)
		case 'd', 'D':
			return w.advance(1)
		case 'j':
			w.scroller.ScrollBy(w.cfg.WheelStep)
			return true
		case 'k':
			w.scroller.ScrollBy(-w.cfg.WheelStep)
			return true
		}
	}
	return false
}

func (w *Work) advance(dir int) bool {
	if err := w.ctrl.Advance(dir); err != nil {
		w.env.Log.Debug("advance rejected", zap.Error(err))
		return false
	}
	return true
}

func (w *Work) HandleMouse(ev *tcell.EventMouse, x, y int) bool {
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		w.scroller.ScrollBy(-w.cfg.WheelStep)
		return true
	case buttons&tcell.WheelDown != 0:
		w.scroller.ScrollBy(w.cfg.WheelStep)
		return true
	}

	if buttons&tcell.Button1 != 0 {
		if !w.pressed {
			return w.press(x, y)
		}
		if w.ctrl.Dragging() {
			dx := x - w.pressX
			if !w.moved && abs(dx) > clickThreshold {
				w.moved = true
				w.env.Cues.PlaySwoosh()
				w.swooshed = true
			}
			if w.moved {
				w.ctrl.Drag(float64(dx))
			}
		}
		return true
	}

	if !w.pressed {
		return false
	}
	w.pressed = false
	if !w.ctrl.Dragging() {
		return true
	}
	w.ctrl.EndDrag()
	if w.swooshed {
		w.env.Cues.StopSwoosh()
		w.swooshed = false
	}
	if !w.moved {
		w.selectAt(x, y)
	}
	return true
}

func (w *Work) press(x, y int) bool {
	switch {
	case w.prev.Contains(x, y):
		return w.advance(-1)
	case w.next.Contains(x, y):
		return w.advance(1)
	}
	if w.fallback {
		for i, r := range w.list {
			if r.Contains(x, y) {
				_ = w.ctrl.Select(i)
				return true
			}
		}
		return false
	}
	if !w.stage.Contains(x, y) {
		return false
	}
	w.pressed = true
	w.moved = false
	w.pressX = x
	w.ctrl.BeginDrag()
	return true
}

func (w *Work) selectAt(x, y int) {
	slot := w.surface.HitTest(x-w.stage.X, y-w.stage.Y)
	if slot < 0 {
		return
	}
	if err := w.ctrl.Select(slot); err != nil {
		w.env.Log.Debug("select rejected", zap.Error(err))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var _ View = (*Work)(nil)
