package render

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func rowText(c *Canvas, y int) string {
	w, _ := c.Size()
	out := make([]rune, 0, w)
	for x := 0; x < w; x++ {
		ch, _, _ := c.Cell(x, y)
		if ch == 0 {
			ch = ' '
		}
		out = append(out, ch)
	}
	return string(out)
}

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 5}
	assert.Equal(t, Rect{X: 5, Y: 2, W: 5, H: 3}, a.Intersect(Rect{X: 5, Y: 2, W: 20, H: 20}))
	assert.True(t, a.Intersect(Rect{X: 10, Y: 0, W: 3, H: 3}).Empty())
	assert.True(t, a.Contains(9, 4))
	assert.False(t, a.Contains(10, 4))
	assert.Equal(t, Rect{X: 1, Y: 1, W: 8, H: 3}, a.Inset(1))
}

func TestCanvasTextClips(t *testing.T) {
	s := newScreen(t, 20, 3)
	c := NewCanvas(s)

	n := c.Text(15, 0, "abcdefgh", tcell.StyleDefault)
	assert.Equal(t, 5, n)
	assert.Equal(t, "               abcde", rowText(c, 0))

	// Wide rune that would straddle the edge is dropped
	n = c.Text(18, 1, "a世", tcell.StyleDefault)
	assert.Equal(t, 1, n)
}

func TestSubCanvasTranslatesAndClips(t *testing.T) {
	s := newScreen(t, 20, 5)
	root := NewCanvas(s)
	sub := root.Sub(Rect{X: 5, Y: 1, W: 4, H: 2})

	sub.Text(0, 0, "hello", tcell.StyleDefault)
	sub.Set(0, 5, 'x', tcell.StyleDefault)

	assert.Equal(t, "     hell           ", rowText(root, 1))
	ch, _, _ := root.Cell(5, 3)
	assert.NotEqual(t, 'x', ch)

	w, h := sub.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 2, h)
}

func TestBoxCorners(t *testing.T) {
	s := newScreen(t, 12, 4)
	c := NewCanvas(s)
	c.Box(Rect{W: 12, H: 4}, tcell.StyleDefault, "Work")

	assert.Equal(t, "╭─ Work ───╮", rowText(c, 0))
	assert.Equal(t, "╰──────────╯", rowText(c, 3))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"the quick", "brown fox"}, Wrap("the quick brown fox", 10))
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, Wrap("abcdefghij", 4))
	assert.Equal(t, []string{"a", "", "b"}, Wrap("a\n\nb", 5))
	assert.Nil(t, Wrap("x", 0))
}

func TestBlend(t *testing.T) {
	black := tcell.NewRGBColor(0, 0, 0)
	white := tcell.NewRGBColor(255, 255, 255)

	assert.Equal(t, black, Blend(black, white, 0))
	assert.Equal(t, white, Blend(black, white, 1))

	r, g, b := Blend(black, white, 0.5).RGB()
	assert.InDelta(t, 128, r, 1)
	assert.InDelta(t, 128, g, 1)
	assert.InDelta(t, 128, b, 1)

	assert.Equal(t, tcell.ColorDefault, Blend(tcell.ColorDefault, white, 0.2))
	assert.Equal(t, white, Blend(tcell.ColorDefault, white, 0.8))
	assert.Equal(t, DefaultTheme.Accent, Hex("#facc15", black))
	assert.Equal(t, black, Hex("nope", black))
}

func TestTintKeepsRune(t *testing.T) {
	s := newScreen(t, 4, 1)
	c := NewCanvas(s)
	c.Set(0, 0, 'A', DefaultTheme.Base())
	c.Tint(0, 0, DefaultTheme.Accent, 0.5)

	ch, st, ok := c.Cell(0, 0)
	require.True(t, ok)
	assert.Equal(t, 'A', ch)
	_, bg, _ := st.Decompose()
	assert.NotEqual(t, DefaultTheme.Bg, bg)
}

func TestToasterLifecycle(t *testing.T) {
	s := newScreen(t, 60, 12)
	c := NewCanvas(s)
	tt := NewToaster(time.Second)

	assert.True(t, tt.Draw(c).Empty())

	tt.Show(ToastSuccess, "Message sent successfully!", "Thanks for reaching out.")
	box := tt.Draw(c)
	require.False(t, box.Empty())
	ch, _, _ := c.Cell(box.X+2, box.Y+1)
	assert.Equal(t, '✓', ch)

	tt.Step(600 * time.Millisecond)
	_, ok := tt.Current()
	assert.True(t, ok)
	tt.Step(600 * time.Millisecond)
	_, ok = tt.Current()
	assert.False(t, ok)

	tt.Show(ToastError, "x", "")
	tt.Dismiss()
	_, ok = tt.Current()
	assert.False(t, ok)
}
