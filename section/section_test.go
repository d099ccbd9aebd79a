package section

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/termfolio/config"
	"github.com/lixenwraith/termfolio/contact"
	"github.com/lixenwraith/termfolio/content"
	"github.com/lixenwraith/termfolio/core"
	"github.com/lixenwraith/termfolio/frame"
	"github.com/lixenwraith/termfolio/render"
)

type cues struct {
	ticks, swooshes, stops, chimes, errors int
}

func (c *cues) PlayTick()   { c.ticks++ }
func (c *cues) PlaySwoosh() { c.swooshes++ }
func (c *cues) StopSwoosh() { c.stops++ }
func (c *cues) PlayChime()  { c.chimes++ }
func (c *cues) PlayError()  { c.errors++ }

func newCanvas(t *testing.T, w, h int) *render.Canvas {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return render.NewCanvas(s)
}

// rowText reads one canvas row back as a string
func rowText(c *render.Canvas, y int) string {
	w, _ := c.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _ := c.Cell(x, y)
		if ch == 0 {
			ch = ' '
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func screenText(c *render.Canvas) string {
	_, h := c.Size()
	lines := make([]string, h)
	for y := range lines {
		lines[y] = rowText(c, y)
	}
	return strings.Join(lines, "\n")
}

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func runeKey(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func env(c *cues) Env { return Env{Theme: render.DefaultTheme, Cues: c} }

// --- Hero / Skills ---

func TestHeroTypesHeadline(t *testing.T) {
	h := NewHero(env(&cues{}), content.Default())
	assert.Equal(t, core.SectionHome, h.Section())
	assert.Empty(t, h.Typed())

	h.Step(3 * 90 * time.Millisecond)
	assert.Equal(t, "WEL", h.Typed())

	h.Step(10 * time.Second)
	assert.Equal(t, "WELCOME TO MY PORTFOLIO", h.Typed())

	c := newCanvas(t, 100, 24)
	h.Draw(c)
	text := screenText(c)
	assert.Contains(t, text, "WELCOME TO MY PORTFOLIO")
	assert.Contains(t, text, "RUTHU PARINIKA")
	assert.Contains(t, text, "RP")
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AL", initials("Ada  Lovelace"))
	assert.Equal(t, "", initials("   "))
}

func TestBadgeRowsFitWidth(t *testing.T) {
	items := []string{"Go", "Rust", "SQL", "Kubernetes"}
	rows := badgeRows(items, 24)
	require.Len(t, rows, 2)
	assert.Equal(t, []int{0, 1, 2}, rows[0].items)
	assert.Equal(t, 6+8+7+2, rows[0].width)
	assert.Equal(t, []int{3}, rows[1].items)
	for _, r := range rows {
		assert.LessOrEqual(t, r.width, 24)
	}
	assert.Len(t, badgeRows(items, 20), 3)
	assert.Empty(t, badgeRows(nil, 20))
}

func TestSplitTitle(t *testing.T) {
	plain, accent := splitTitle(" MY DESIGN WORK ")
	assert.Equal(t, "MY DESIGN", plain)
	assert.Equal(t, "WORK", accent)

	plain, accent = splitTitle("SKILLS")
	assert.Equal(t, "SKILLS", plain)
	assert.Empty(t, accent)
}

func TestSkillsRevealOnEnter(t *testing.T) {
	s := NewSkills(env(&cues{}), content.Default())
	s.Step(time.Second)
	assert.False(t, s.Revealed(), "reveal waits for the page to be entered")

	s.Enter()
	s.Step(5 * time.Second)
	assert.True(t, s.Revealed())

	c := newCanvas(t, 100, 30)
	s.Draw(c)
	assert.Contains(t, screenText(c), "( JavaScript )")
}

// --- Work ---

type workRig struct {
	clock  *frame.MockClock
	driver *frame.Driver
	cues   *cues
	w      *Work
}

func newWorkRig(t *testing.T) *workRig {
	t.Helper()
	clock := frame.NewMockClock(time.Unix(0, 0))
	driver := frame.NewDriver(clock)
	driver.Tick()
	cs := &cues{}
	w, err := NewWork(env(cs), content.Default(), driver, config.Default().Carousel)
	require.NoError(t, err)
	t.Cleanup(w.Close)
	return &workRig{clock: clock, driver: driver, cues: cs, w: w}
}

func (r *workRig) settle() {
	r.clock.Frames(r.driver, 90, 16*time.Millisecond)
}

func mouse(x, y int, b tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, b, tcell.ModNone)
}

func TestNewWorkRequiresProjects(t *testing.T) {
	driver := frame.NewDriver(nil)
	c := content.Default()
	c.Work.Projects = nil
	_, err := NewWork(Env{}, c, driver, config.Default().Carousel)
	assert.Error(t, err)

	_, err = NewWork(Env{}, nil, driver, config.Default().Carousel)
	assert.Error(t, err)
}

func TestNewWorkRejectsUnknownEase(t *testing.T) {
	cfg := config.Default().Carousel
	cfg.SettleEase = "bounce"
	_, err := NewWork(Env{}, content.Default(), frame.NewDriver(nil), cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestWorkKeysAdvance(t *testing.T) {
	r := newWorkRig(t)
	ctrl := r.w.Controller()
	assert.Equal(t, 4, ctrl.Len())
	assert.Equal(t, 0, ctrl.Current())

	assert.True(t, r.w.HandleKey(key(tcell.KeyRight)))
	r.settle()
	assert.Equal(t, 1, ctrl.Current())
	assert.Equal(t, 1, r.cues.ticks)

	assert.True(t, r.w.HandleKey(runeKey('a')))
	r.settle()
	assert.Equal(t, 0, ctrl.Current())

	assert.True(t, r.w.HandleKey(key(tcell.KeyLeft)))
	r.settle()
	assert.Equal(t, 3, ctrl.Current(), "wraps backward past the first project")

	assert.False(t, r.w.HandleKey(runeKey('x')))
}

func TestWorkWheelScrolls(t *testing.T) {
	r := newWorkRig(t)
	c := newCanvas(t, 120, 30)
	r.w.Draw(c)

	for i := 0; i < 10; i++ {
		assert.True(t, r.w.HandleMouse(mouse(60, 15, tcell.WheelDown), 60, 15))
	}
	assert.InDelta(t, 500, r.w.Scroller().Scroll(), 1e-9)
	r.settle()
	assert.Equal(t, 1, r.w.Controller().Current())
}

func TestWorkDrawsCardsAndButtons(t *testing.T) {
	r := newWorkRig(t)
	c := newCanvas(t, 120, 30)
	r.w.Draw(c)
	assert.False(t, r.w.Fallback())

	text := screenText(c)
	assert.Contains(t, text, "MY DESIGN WORK")
	assert.Contains(t, text, "◀")
	assert.Contains(t, text, "▶")
	assert.Contains(t, text, "Project Alpha")

	// Next button advances
	assert.True(t, r.w.HandleMouse(mouse(r.w.next.X+1, r.w.next.Y, tcell.Button1), r.w.next.X+1, r.w.next.Y))
	r.w.HandleMouse(mouse(r.w.next.X+1, r.w.next.Y, tcell.ButtonNone), r.w.next.X+1, r.w.next.Y)
	r.settle()
	assert.Equal(t, 1, r.w.Controller().Current())
}

func TestWorkClickSelectsCard(t *testing.T) {
	r := newWorkRig(t)
	c := newCanvas(t, 120, 30)
	r.w.Draw(c)

	// Find a side card: any stage cell whose topmost card is not the current one
	target, px, py := -1, 0, 0
	for y := 0; y < r.w.stage.H && target < 0; y++ {
		for x := 0; x < r.w.stage.W; x++ {
			if slot := r.w.Surface().HitTest(x, y); slot >= 0 && slot != r.w.Controller().Current() {
				target, px, py = slot, x+r.w.stage.X, y+r.w.stage.Y
				break
			}
		}
	}
	require.GreaterOrEqual(t, target, 0, "a side card is visible")

	assert.True(t, r.w.HandleMouse(mouse(px, py, tcell.Button1), px, py))
	assert.True(t, r.w.Controller().Dragging())
	assert.True(t, r.w.HandleMouse(mouse(px, py, tcell.ButtonNone), px, py))
	assert.False(t, r.w.Controller().Dragging())
	assert.Zero(t, r.cues.swooshes, "a click is not a drag")

	r.settle()
	assert.Equal(t, target, r.w.Controller().Current())
}

func TestWorkDragPans(t *testing.T) {
	r := newWorkRig(t)
	c := newCanvas(t, 120, 30)
	r.w.Draw(c)

	x, y := 80, 15
	require.True(t, r.w.stage.Contains(x, y))
	r.w.HandleMouse(mouse(x, y, tcell.Button1), x, y)
	r.w.HandleMouse(mouse(x-15, y, tcell.Button1), x-15, y)
	r.w.HandleMouse(mouse(x-30, y, tcell.Button1), x-30, y)
	assert.InDelta(t, 0.3, r.w.Controller().Position(), 1e-9)
	assert.Equal(t, 1, r.cues.swooshes)

	r.w.HandleMouse(mouse(x-30, y, tcell.ButtonNone), x-30, y)
	assert.Equal(t, 1, r.cues.stops)
	r.settle()
	assert.Equal(t, 1, r.w.Controller().Current())
	assert.InDelta(t, 0.25, r.w.Controller().Playhead(), 1e-9)
}

func TestWorkSmallScreenFallsBackToList(t *testing.T) {
	r := newWorkRig(t)
	c := newCanvas(t, 30, 12)
	r.w.Draw(c)
	require.True(t, r.w.Fallback())
	assert.Contains(t, screenText(c), "▸ Project Alpha")

	row := r.w.stage.Y + 2
	assert.True(t, r.w.HandleMouse(mouse(5, row, tcell.Button1), 5, row))
	r.settle()
	assert.Equal(t, 2, r.w.Controller().Current())
}

func TestCardSurfaceHitTestPrefersTopmost(t *testing.T) {
	s := NewCardSurface(2)
	s.rects[0] = render.Rect{X: 0, Y: 0, W: 10, H: 5}
	s.rects[1] = render.Rect{X: 5, Y: 0, W: 10, H: 5}
	s.order = []int{0, 1}
	assert.Equal(t, 1, s.HitTest(6, 1))
	assert.Equal(t, 0, s.HitTest(2, 1))
	assert.Equal(t, -1, s.HitTest(30, 1))

	s.order = []int{1, 0}
	assert.Equal(t, 0, s.HitTest(6, 1))
}

func TestWorkCloseReleasesScheduler(t *testing.T) {
	r := newWorkRig(t)
	r.w.HandleKey(key(tcell.KeyRight))
	r.w.Close()
	assert.Zero(t, r.w.Scroller().Listeners())
	assert.Zero(t, r.driver.Pending())

	commits := r.w.Surface().Commits()
	r.settle()
	assert.Equal(t, commits, r.w.Surface().Commits())
}

// --- Experience ---

func TestExperienceScrollClamps(t *testing.T) {
	e := NewExperience(env(&cues{}), content.Default())
	e.Enter()
	e.Step(5 * time.Second)

	c := newCanvas(t, 100, 20)
	e.Draw(c)
	assert.Contains(t, screenText(c), "MINDME")

	for i := 0; i < 500; i++ {
		assert.True(t, e.HandleKey(key(tcell.KeyDown)))
	}
	e.Draw(c)
	limit := e.Offset()
	assert.Positive(t, limit)

	e.HandleKey(key(tcell.KeyPgDn))
	e.Draw(c)
	assert.Equal(t, limit, e.Offset())

	for i := 0; i < 500; i++ {
		e.HandleMouse(mouse(0, 0, tcell.WheelUp), 0, 0)
	}
	assert.Zero(t, e.Offset())
}

// --- Contact ---

func TestContactEditingAndSubmit(t *testing.T) {
	cs := &cues{}
	toaster := render.NewToaster(time.Second)
	p := NewContact(env(cs), content.Default(), toaster)
	assert.False(t, p.Capturing())

	assert.False(t, p.HandleKey(runeKey('x')), "idle page ignores typing")
	assert.True(t, p.HandleKey(key(tcell.KeyEnter)))
	require.True(t, p.Capturing())

	typeText := func(s string) {
		for _, r := range s {
			p.HandleKey(runeKey(r))
		}
	}
	typeText("Ada")
	p.HandleKey(key(tcell.KeyTab))
	typeText("Lovelace")
	p.HandleKey(key(tcell.KeyTab))
	typeText("ada@example.com")
	p.HandleKey(key(tcell.KeyTab))
	typeText("Engines")
	p.HandleKey(key(tcell.KeyTab))
	typeText("About the analytical engine.")

	assert.True(t, p.HandleKey(key(tcell.KeyCtrlS)))
	assert.False(t, p.Editing())
	assert.Equal(t, 1, p.Form().Sent())
	assert.Equal(t, 1, cs.chimes)

	toast, ok := toaster.Current()
	require.True(t, ok)
	assert.Equal(t, contact.SentTitle, toast.Title)
}

func TestContactEscapeLeaves(t *testing.T) {
	p := NewContact(env(&cues{}), content.Default(), render.NewToaster(0))
	p.HandleKey(runeKey('i'))
	require.True(t, p.Editing())
	p.HandleKey(key(tcell.KeyEscape))
	assert.False(t, p.Editing())
}

func TestContactClickFocusesField(t *testing.T) {
	p := NewContact(env(&cues{}), content.Default(), render.NewToaster(0))
	c := newCanvas(t, 120, 40)
	p.Draw(c)

	r := p.fields[contact.Subject]
	require.False(t, r.Empty())
	assert.True(t, p.HandleMouse(mouse(r.X+1, r.Y, tcell.Button1), r.X+1, r.Y))
	assert.True(t, p.Editing())
	assert.Equal(t, contact.Subject, p.Form().Focus())

	// Sending an empty form keeps editing and shows errors
	assert.True(t, p.HandleMouse(mouse(p.send.X, p.send.Y, tcell.Button1), p.send.X, p.send.Y))
	assert.True(t, p.Editing())
	p.Draw(c)
	assert.Contains(t, screenText(c), "Please enter a valid email address.")

	// Clicking outside ends editing
	assert.True(t, p.HandleMouse(mouse(0, 0, tcell.Button1), 0, 0))
	assert.False(t, p.Editing())
}

func TestContactQR(t *testing.T) {
	p := NewContact(env(&cues{}), content.Default(), render.NewToaster(0))
	qr := p.QR()
	require.NotNil(t, qr)
	assert.Equal(t, "mailto:alex.morgan@example.com", qr.Content())

	n := qr.Modules()
	assert.GreaterOrEqual(t, n, 21)
	w, h := qr.Size()
	assert.Equal(t, n+2, w)
	assert.Equal(t, (n+3)/2, h)

	c := newCanvas(t, 120, 60)
	p.Draw(c)
	assert.Contains(t, screenText(c), "▀")

	c2 := content.Default()
	c2.Contact.Email = ""
	p.SetContent(c2)
	assert.Nil(t, p.QR())
}

func TestLayoutField(t *testing.T) {
	lines, cx, cy := layoutField([]rune("abcdefg"), 7, 3)
	require.Len(t, lines, 3)
	assert.Equal(t, "abc", string(lines[0]))
	assert.Equal(t, "g", string(lines[2]))
	assert.Equal(t, 1, cx)
	assert.Equal(t, 2, cy)

	lines, cx, cy = layoutField([]rune("abc"), 3, 3)
	require.Len(t, lines, 2, "cursor past a full line starts a new one")
	assert.Equal(t, 0, cx)
	assert.Equal(t, 1, cy)

	lines, cx, cy = layoutField([]rune("ab\ncd"), 3, 5)
	require.Len(t, lines, 2)
	assert.Equal(t, "cd", string(lines[1]))
	assert.Equal(t, 0, cx)
	assert.Equal(t, 1, cy)

	lines, _, _ = layoutField(nil, 0, 0)
	assert.Nil(t, lines)
}

// --- Chrome ---

func TestHeaderTabs(t *testing.T) {
	h := NewHeader(render.DefaultTheme, content.Default())
	c := newCanvas(t, 100, 1)
	h.Draw(c, core.SectionWork)

	row := rowText(c, 0)
	assert.Contains(t, row, "RUTHU PARINIKA")
	assert.Contains(t, row, "3 Work")

	x := strings.Index(row, "4 Experience")
	require.GreaterOrEqual(t, x, 0)
	s, ok := h.HitTab(x, 0)
	require.True(t, ok)
	assert.Equal(t, core.SectionExperience, s)

	_, ok = h.HitTab(0, 0)
	assert.False(t, ok)

	// Narrow screens fall back to numbers
	narrow := newCanvas(t, 40, 1)
	h.Draw(narrow, core.SectionHome)
	assert.NotContains(t, rowText(narrow, 0), "Experience")
	_, ok = h.HitTab(39-3, 0)
	assert.True(t, ok)
}

func TestFooterDraw(t *testing.T) {
	f := NewFooter(render.DefaultTheme, content.Default())
	c := newCanvas(t, 120, 2)
	f.Draw(c, "q quit")
	assert.Contains(t, rowText(c, 0), "©")
	assert.Contains(t, rowText(c, 1), "q quit")
}
