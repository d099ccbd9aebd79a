package effect

import "time"

// Typewriter timing defaults
const (
	DefaultTypeDelay  = 90 * time.Millisecond
	DefaultResetPause = 1200 * time.Millisecond
	DefaultBlink      = 1100 * time.Millisecond
)

// TypewriterOptions tunes a Typewriter; zero durations take the defaults
type TypewriterOptions struct {
	Delay      time.Duration // Per character
	ResetPause time.Duration // Pause on the full text before restarting
	Blink      time.Duration // Cursor period, on for the first half
	Repeat     bool
	OnComplete func()
}

// Typewriter reveals text one rune per delay with a blinking cursor
type Typewriter struct {
	text []rune
	opts TypewriterOptions

	visible   int
	acc       time.Duration
	blinkAt   time.Duration
	completed bool
}

// NewTypewriter starts with nothing visible
func NewTypewriter(text string, opts TypewriterOptions) *Typewriter {
	if opts.Delay <= 0 {
		opts.Delay = DefaultTypeDelay
	}
	if opts.ResetPause <= 0 {
		opts.ResetPause = DefaultResetPause
	}
	if opts.Blink <= 0 {
		opts.Blink = DefaultBlink
	}
	return &Typewriter{text: []rune(text), opts: opts}
}

// SetText restarts with new text, no-op when unchanged
func (tw *Typewriter) SetText(text string) {
	if string(tw.text) == text {
		return
	}
	tw.text = []rune(text)
	tw.visible = 0
	tw.acc = 0
	tw.completed = false
}

// Step advances by dt
func (tw *Typewriter) Step(dt time.Duration) {
	if dt <= 0 {
		return
	}
	tw.blinkAt = (tw.blinkAt + dt) % tw.opts.Blink
	tw.acc += dt

	for {
		if tw.visible < len(tw.text) {
			if tw.acc < tw.opts.Delay {
				return
			}
			tw.acc -= tw.opts.Delay
			tw.visible++
			continue
		}

		if tw.opts.Repeat && len(tw.text) > 0 {
			if tw.acc < tw.opts.ResetPause {
				return
			}
			tw.acc -= tw.opts.ResetPause
			tw.visible = 0
			continue
		}

		tw.acc = 0
		if !tw.completed {
			tw.completed = true
			if tw.opts.OnComplete != nil {
				tw.opts.OnComplete()
			}
		}
		return
	}
}

// Visible returns the typed prefix
func (tw *Typewriter) Visible() string { return string(tw.text[:tw.visible]) }

// VisibleLen returns the typed rune count
func (tw *Typewriter) VisibleLen() int { return tw.visible }

// Text returns the full text
func (tw *Typewriter) Text() string { return string(tw.text) }

// Done reports a completed non-repeating run
func (tw *Typewriter) Done() bool { return tw.completed }

// CursorOn reports the cursor blink phase
func (tw *Typewriter) CursorOn() bool {
	return tw.blinkAt < tw.opts.Blink/2
}
