package render

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// ToastSeverity defines message type for styling
type ToastSeverity uint8

const (
	ToastInfo    ToastSeverity = iota // Default, neutral
	ToastSuccess                      // Green, positive
	ToastWarning                      // Yellow, caution
	ToastError                        // Red, failure
)

// ToastIcons for severity levels
var ToastIcons = map[ToastSeverity]rune{
	ToastInfo:    'ℹ',
	ToastSuccess: '✓',
	ToastWarning: '⚠',
	ToastError:   '✗',
}

// ToastColors default colors per severity
var ToastColors = map[ToastSeverity]struct{ Fg, Bg, Icon tcell.Color }{
	ToastInfo: {
		Fg:   tcell.NewRGBColor(200, 200, 200),
		Bg:   tcell.NewRGBColor(40, 40, 50),
		Icon: tcell.NewRGBColor(100, 150, 255),
	},
	ToastSuccess: {
		Fg:   tcell.NewRGBColor(220, 255, 220),
		Bg:   tcell.NewRGBColor(30, 60, 30),
		Icon: tcell.NewRGBColor(80, 220, 80),
	},
	ToastWarning: {
		Fg:   tcell.NewRGBColor(255, 240, 200),
		Bg:   tcell.NewRGBColor(60, 50, 20),
		Icon: tcell.NewRGBColor(255, 200, 60),
	},
	ToastError: {
		Fg:   tcell.NewRGBColor(255, 220, 220),
		Bg:   tcell.NewRGBColor(60, 25, 25),
		Icon: tcell.NewRGBColor(255, 80, 80),
	},
}

// DefaultToastTTL is how long a toast stays up
const DefaultToastTTL = 4 * time.Second

// Toast is one timed notification
type Toast struct {
	Severity ToastSeverity
	Title    string
	Body     string
}

// Toaster shows one toast at a time; a new toast replaces the current one
type Toaster struct {
	ttl       time.Duration
	current   Toast
	remaining time.Duration
}

// NewToaster creates a toaster, ttl <= 0 uses DefaultToastTTL
func NewToaster(ttl time.Duration) *Toaster {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	return &Toaster{ttl: ttl}
}

// Show replaces the current toast
func (t *Toaster) Show(sev ToastSeverity, title, body string) {
	t.current = Toast{Severity: sev, Title: title, Body: body}
	t.remaining = t.ttl
}

// Dismiss hides the current toast
func (t *Toaster) Dismiss() { t.remaining = 0 }

// Step counts down the visible time
func (t *Toaster) Step(dt time.Duration) {
	if t.remaining <= 0 {
		return
	}
	t.remaining -= dt
	if t.remaining < 0 {
		t.remaining = 0
	}
}

// Current returns the visible toast
func (t *Toaster) Current() (Toast, bool) {
	return t.current, t.remaining > 0
}

// Draw renders the toast as a floating box at the bottom right
// Returns the occupied rectangle for hit testing
func (t *Toaster) Draw(c *Canvas) Rect {
	toast, ok := t.Current()
	w, h := c.Size()
	if !ok || w < 8 || h < 4 {
		return Rect{}
	}

	colors := ToastColors[toast.Severity]
	inner := max(runewidth.StringWidth(toast.Title)+2, 10)
	inner = min(inner, 44, w-6)
	body := Wrap(toast.Body, inner)
	if len(body) > 3 {
		body = body[:3]
	}
	for _, line := range body {
		inner = max(inner, min(runewidth.StringWidth(line), w-6))
	}

	box := Rect{W: inner + 4, H: len(body) + 3}
	box.X = w - box.W - 2
	box.Y = h - box.H - 1
	if box.X < 0 || box.Y < 0 {
		return Rect{}
	}

	st := tcell.StyleDefault.Background(colors.Bg).Foreground(colors.Fg)
	c.Fill(box, ' ', st)
	c.Box(box, st.Foreground(colors.Icon), "")
	c.Set(box.X+2, box.Y+1, ToastIcons[toast.Severity], st.Foreground(colors.Icon))
	c.Text(box.X+4, box.Y+1, Truncate(toast.Title, inner-2), st.Bold(true))
	for i, line := range body {
		c.Text(box.X+2, box.Y+2+i, line, st)
	}
	return box
}
