package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/termfolio/audio"
	"github.com/lixenwraith/termfolio/config"
	"github.com/lixenwraith/termfolio/content"
	"github.com/lixenwraith/termfolio/core"
	"github.com/lixenwraith/termfolio/effect"
	"github.com/lixenwraith/termfolio/frame"
	"github.com/lixenwraith/termfolio/render"
	"github.com/lixenwraith/termfolio/section"
)

// Layout rows reserved for the chrome
const (
	headerRows = 1
	footerRows = 2
	// overlayMinColors gates the tint overlay to terminals that can blend it
	overlayMinColors = 256
	eventBuffer      = 64
)

// ErrNoScreen is returned when New is called without a screen
var ErrNoScreen = errors.New("app: nil screen")

// keyHints is the footer help per page
var keyHints = [core.SectionCount]string{
	core.SectionHome:       "1-5 pages   Tab next   q quit",
	core.SectionSkills:     "1-5 pages   Tab next   q quit",
	core.SectionWork:       "←/→ a/d browse   j/k or wheel scroll   drag to spin   click a card to centre   q quit",
	core.SectionExperience: "↑/↓ j/k scroll   PgUp/PgDn page   Tab next   q quit",
	core.SectionContact:    "Enter/i write   Tab next field   Ctrl-S send   Esc done   q quit",
}

// Options wires the app's collaborators; zero values fall back to defaults
type Options struct {
	Config  *config.Config
	Content *content.Content
	// Changes delivers reloaded content; nil disables live reload
	Changes <-chan *content.Content
	Cues    audio.Cues
	Log     *zap.Logger
	Clock   frame.Clock
	Theme   *render.Theme
}

// App owns the screen loop: one goroutine reads events, the loop goroutine
// steps animations, dispatches input and draws
type App struct {
	screen  tcell.Screen
	cfg     *config.Config
	log     *zap.Logger
	theme   render.Theme
	changes <-chan *content.Content

	driver  *frame.Driver
	toaster *render.Toaster
	goo     *effect.Goo

	header *section.Header
	footer *section.Footer
	views  [core.SectionCount]section.View
	work   *section.Work

	active core.Section
	body   render.Rect
	toast  render.Rect
	frames uint64
	closed bool
}

// New builds every page over the initial content
func New(screen tcell.Screen, opts Options) (*App, error) {
	if screen == nil {
		return nil, ErrNoScreen
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	c := opts.Content
	if c == nil {
		c = content.Default()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	cues := opts.Cues
	if cues == nil {
		cues = audio.Silent{}
	}
	theme := render.DefaultTheme
	if opts.Theme != nil {
		theme = *opts.Theme
	}

	a := &App{
		screen:  screen,
		cfg:     cfg,
		log:     log,
		theme:   theme,
		changes: opts.Changes,
		driver:  frame.NewDriver(opts.Clock),
		toaster: render.NewToaster(0),
		header:  section.NewHeader(theme, c),
		footer:  section.NewFooter(theme, c),
	}

	env := section.Env{Theme: theme, Log: log, Cues: cues, FPS: cfg.Frame.FPS}
	work, err := section.NewWork(env, c, a.driver, cfg.Carousel)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	a.work = work
	a.views = [core.SectionCount]section.View{
		core.SectionHome:       section.NewHero(env, c),
		core.SectionSkills:     section.NewSkills(env, c),
		core.SectionWork:       work,
		core.SectionExperience: section.NewExperience(env, c),
		core.SectionContact:    section.NewContact(env, c, a.toaster),
	}

	if cfg.Overlay.Enabled && screen.Colors() >= overlayMinColors {
		a.goo = effect.NewGoo(cfg.Overlay.Blobs, cfg.Frame.FPS)
	}

	// Prime the driver so the first frame sees a zero delta
	a.driver.Tick()
	a.enter(core.SectionHome)

	log.Info("app ready",
		zap.Int("projects", work.Controller().Len()),
		zap.Bool("overlay", a.goo != nil),
		zap.Int("fps", cfg.Frame.FPS))
	return a, nil
}

// --- Accessors ---

// Active returns the page on screen
func (a *App) Active() core.Section { return a.active }

// View returns the page for s
func (a *App) View(s core.Section) section.View {
	if !s.Valid() {
		return nil
	}
	return a.views[s]
}

// Work returns the carousel page
func (a *App) Work() *section.Work { return a.work }

// Toaster returns the notification box
func (a *App) Toaster() *render.Toaster { return a.toaster }

// Overlay returns the tint overlay, nil when disabled
func (a *App) Overlay() *effect.Goo { return a.goo }

// Frames counts drawn frames
func (a *App) Frames() uint64 { return a.frames }

// --- Loop ---

// Run drives the app until ctx is cancelled or the user quits
// The caller keeps ownership of the screen and finalizes it after Run returns
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, eventBuffer)
	quit := make(chan struct{})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(core.Guard(func() error {
		a.screen.ChannelEvents(events, quit)
		return nil
	}))
	g.Go(core.Guard(func() error {
		defer close(quit)
		return a.loop(ctx, events)
	}))

	err := g.Wait()
	a.Close()
	return err
}

func (a *App) loop(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(frame.Interval(a.cfg.Frame.FPS))
	defer ticker.Stop()

	a.Frame()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				// Screen finalized underneath us
				return nil
			}
			if !a.HandleEvent(ev) {
				a.log.Info("quit requested", zap.Uint64("frames", a.frames))
				return nil
			}

		case c := <-a.changes:
			a.SetContent(c)

		case <-ticker.C:
			a.Frame()
		}
	}
}

// Frame advances animations by the elapsed time and draws once
func (a *App) Frame() {
	a.driver.Tick()
	dt := a.driver.Delta()
	for _, v := range a.views {
		v.Step(dt)
	}
	a.toaster.Step(dt)
	if a.goo != nil {
		a.goo.Step(dt)
	}
	a.Draw()
	a.screen.Show()
	a.frames++
}

// Draw paints the chrome, the active page, the overlay and the toast
func (a *App) Draw() {
	th := a.theme
	w, h := a.screen.Size()
	c := render.NewCanvas(a.screen)
	c.Clear(th.Base())
	if w <= 0 || h <= 0 {
		return
	}

	a.header.Draw(c.Sub(render.Rect{W: w, H: headerRows}), a.active)

	foot := min(footerRows, max(h-headerRows, 0))
	a.body = render.Rect{Y: headerRows, W: w, H: max(h-headerRows-foot, 0)}
	body := c.Sub(a.body)
	a.views[a.active].Draw(body)
	if a.goo != nil {
		a.goo.Draw(body)
	}
	if foot > 0 {
		a.footer.Draw(c.Sub(render.Rect{Y: h - foot, W: w, H: foot}), keyHints[a.active])
	}
	a.toast = a.toaster.Draw(c)
}

// --- Input ---

// HandleEvent dispatches one terminal event, returning false to quit
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return false
	}

	view := a.views[a.active]
	if view.Capturing() {
		view.HandleKey(ev)
		return true
	}
	if view.HandleKey(ev) {
		return true
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		if _, shown := a.toaster.Current(); shown {
			a.toaster.Dismiss()
			return true
		}
		return false
	case tcell.KeyTab:
		a.SetSection(a.active.Next())
	case tcell.KeyBacktab:
		a.SetSection(a.active.Prev())
	case tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r == 'q' || r == 'Q':
			return false
		case r >= '1' && r < '1'+rune(core.SectionCount):
			a.SetSection(core.Section(r - '1'))
		}
	}
	return true
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	if ev.Buttons()&tcell.Button1 != 0 {
		if s, ok := a.header.HitTab(x, y); ok {
			a.SetSection(s)
			return
		}
		if a.toast.Contains(x, y) {
			a.toaster.Dismiss()
			return
		}
	}
	a.views[a.active].HandleMouse(ev, x-a.body.X, y-a.body.Y)
}

// SetSection switches pages and runs the page's Enter hook
func (a *App) SetSection(s core.Section) {
	if !s.Valid() || s == a.active {
		return
	}
	a.enter(s)
}

func (a *App) enter(s core.Section) {
	a.active = s
	a.views[s].Enter()
	if a.goo != nil {
		a.goo.SetProgress(s.Progress())
	}
	a.log.Debug("section entered", zap.Stringer("section", s))
}

// SetContent swaps the static text of every page
func (a *App) SetContent(c *content.Content) {
	if c == nil {
		return
	}
	a.header.SetContent(c)
	a.footer.SetContent(c)
	for _, v := range a.views {
		v.SetContent(c)
	}
	a.log.Debug("content applied")
}

// Close releases the carousel and the frame driver; safe to call twice
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.work.Close()
	a.driver.Close()
}
