package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lixenwraith/termfolio/config"
	"github.com/lixenwraith/termfolio/contact"
	"github.com/lixenwraith/termfolio/content"
	"github.com/lixenwraith/termfolio/core"
	"github.com/lixenwraith/termfolio/frame"
	"github.com/lixenwraith/termfolio/section"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(120, 40)
	return s
}

type rig struct {
	screen tcell.SimulationScreen
	clock  *frame.MockClock
	app    *App
}

func newRig(t *testing.T, cfg *config.Config) *rig {
	t.Helper()
	s := newScreen(t)
	t.Cleanup(s.Fini)
	clock := frame.NewMockClock(time.Unix(0, 0))
	a, err := New(s, Options{Config: cfg, Clock: clock})
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return &rig{screen: s, clock: clock, app: a}
}

func (r *rig) frames(n int) {
	for i := 0; i < n; i++ {
		r.clock.Advance(16 * time.Millisecond)
		r.app.Frame()
	}
}

func (r *rig) row(y int) string {
	w, _ := r.screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := r.screen.GetContent(x, y)
		b.WriteRune(ch)
	}
	return b.String()
}

func keyEv(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func runeEv(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func TestNewValidates(t *testing.T) {
	_, err := New(nil, Options{})
	assert.ErrorIs(t, err, ErrNoScreen)

	s := newScreen(t)
	defer s.Fini()
	cfg := config.Default()
	cfg.Frame.FPS = 0
	_, err = New(s, Options{Config: cfg})
	assert.ErrorIs(t, err, config.ErrInvalid)

	c := content.Default()
	c.Work.Projects = nil
	_, err = New(s, Options{Content: c})
	assert.Error(t, err)
}

func TestRunQuitsOnKey(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newScreen(t)
	defer s.Fini()
	zc, logs := observer.New(zap.InfoLevel)
	a, err := New(s, Options{Log: zap.New(zc)})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after q")
	}
	assert.Positive(t, a.Frames())
	assert.Equal(t, 1, logs.FilterMessage("quit requested").Len())
	assert.Zero(t, a.Work().Scroller().Listeners(), "run closes the carousel")
}

func TestRunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newScreen(t)
	defer s.Fini()
	changes := make(chan *content.Content, 1)
	a, err := New(s, Options{Changes: changes})
	require.NoError(t, err)

	next := content.Default()
	next.Hero.Name = "GRACE HOPPER"
	changes <- next

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, func() bool { return len(changes) == 0 }, 5*time.Second, 10*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
	a.Draw()
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := s.GetContent(x, 0)
		b.WriteRune(ch)
	}
	assert.Contains(t, b.String(), "GRACE HOPPER")
}

func TestNumberKeysSwitchSections(t *testing.T) {
	r := newRig(t, nil)
	a := r.app
	assert.Equal(t, core.SectionHome, a.Active())

	assert.True(t, a.HandleEvent(runeEv('3')))
	assert.Equal(t, core.SectionWork, a.Active())
	assert.True(t, a.HandleEvent(keyEv(tcell.KeyTab)))
	assert.Equal(t, core.SectionExperience, a.Active())
	assert.True(t, a.HandleEvent(keyEv(tcell.KeyBacktab)))
	assert.True(t, a.HandleEvent(keyEv(tcell.KeyBacktab)))
	assert.Equal(t, core.SectionSkills, a.Active())
	assert.True(t, a.HandleEvent(runeEv('9')))
	assert.Equal(t, core.SectionSkills, a.Active())

	assert.False(t, a.HandleEvent(runeEv('q')))
	assert.False(t, a.HandleEvent(keyEv(tcell.KeyCtrlC)))
	assert.False(t, a.HandleEvent(keyEv(tcell.KeyEscape)))
}

func TestHeaderClickSwitchesSection(t *testing.T) {
	r := newRig(t, nil)
	r.frames(1)
	assert.Contains(t, r.row(0), "5 Contact")

	x := strings.Index(r.row(0), "5 Contact")
	require.GreaterOrEqual(t, x, 0)
	r.app.HandleEvent(tcell.NewEventMouse(x, 0, tcell.Button1, tcell.ModNone))
	assert.Equal(t, core.SectionContact, r.app.Active())
}

func TestCapturingPageKeepsGlobalKeys(t *testing.T) {
	r := newRig(t, nil)
	a := r.app
	a.SetSection(core.SectionContact)
	page := a.View(core.SectionContact).(*section.Contact)

	require.True(t, a.HandleEvent(keyEv(tcell.KeyEnter)))
	require.True(t, page.Capturing())

	assert.True(t, a.HandleEvent(runeEv('q')), "q is text while editing")
	assert.True(t, a.HandleEvent(runeEv('1')))
	assert.Equal(t, core.SectionContact, a.Active())
	assert.Equal(t, "q1", page.Form().Field(contact.FirstName).Value())

	assert.True(t, a.HandleEvent(keyEv(tcell.KeyEscape)))
	assert.False(t, page.Capturing())
	assert.True(t, a.HandleEvent(runeEv('1')))
	assert.Equal(t, core.SectionHome, a.Active())
}

func TestWorkPageDrivenByFrames(t *testing.T) {
	r := newRig(t, nil)
	a := r.app
	a.HandleEvent(runeEv('3'))
	r.frames(1)

	assert.True(t, a.HandleEvent(keyEv(tcell.KeyRight)))
	r.frames(90)
	assert.Equal(t, 1, a.Work().Controller().Current())

	// Wheel events reach the page in body coordinates
	for i := 0; i < 10; i++ {
		a.HandleEvent(tcell.NewEventMouse(60, 20, tcell.WheelDown, tcell.ModNone))
	}
	r.frames(90)
	assert.Equal(t, 2, a.Work().Controller().Current())
}

func TestOverlayFollowsSection(t *testing.T) {
	r := newRig(t, nil)
	g := r.app.Overlay()
	require.NotNil(t, g, "simulation screen reports 256 colours")
	assert.False(t, g.Visible(), "hidden on the first page")

	r.app.SetSection(core.SectionWork)
	assert.True(t, g.Visible())
	r.frames(60)
	assert.Greater(t, g.Opacity(), 0.5)

	r.app.SetSection(core.SectionContact)
	assert.False(t, g.Visible(), "hidden on the last page")

	cfg := config.Default()
	cfg.Overlay.Enabled = false
	assert.Nil(t, newRig(t, cfg).app.Overlay())
}

func TestSubmitShowsToast(t *testing.T) {
	r := newRig(t, nil)
	a := r.app
	a.SetSection(core.SectionContact)
	page := a.View(core.SectionContact).(*section.Contact)
	values := []string{"Ada", "Lovelace", "ada@example.com", "Engines", "About the analytical engine."}
	for i, v := range values {
		page.Form().Field(contact.FieldID(i)).SetValue(v)
	}
	a.HandleEvent(keyEv(tcell.KeyEnter))
	a.HandleEvent(keyEv(tcell.KeyCtrlS))

	_, shown := a.Toaster().Current()
	require.True(t, shown)
	r.frames(1)

	// Esc dismisses the toast before it would quit
	assert.True(t, a.HandleEvent(keyEv(tcell.KeyEscape)))
	_, shown = a.Toaster().Current()
	assert.False(t, shown)
}

func TestResizeRedraws(t *testing.T) {
	r := newRig(t, nil)
	r.screen.SetSize(60, 20)
	assert.True(t, r.app.HandleEvent(tcell.NewEventResize(60, 20)))
	r.frames(1)
	assert.Contains(t, r.row(0), "RUTHU PARINIKA")
}
