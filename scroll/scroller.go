package scroll

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/termfolio/frame"
	"github.com/lixenwraith/termfolio/tween"
	"github.com/lixenwraith/termfolio/vmath"
)

// ErrExtent reports a scroll range too small to wrap within
var ErrExtent = errors.New("scroll extent must exceed 2")

// moveTolerance is the smallest offset change treated as movement
const moveTolerance = 1e-6

// Update describes one scroll change
// Direction is the sign of the attempted movement, not the clamped one
type Update struct {
	Scroll    float64
	Progress  float64
	Direction int
}

// Options tunes a Scroller
type Options struct {
	// EndDelay is the quiet period after movement before scroll-end fires
	EndDelay time.Duration
	// ScrollToDuration is the length of animated ScrollTo moves
	ScrollToDuration time.Duration
	// ScrollToEase shapes animated moves
	ScrollToEase tween.Ease
	Logger       *zap.Logger
}

// DefaultOptions mirrors browser scroll-end timing
func DefaultOptions() Options {
	return Options{
		EndDelay:         150 * time.Millisecond,
		ScrollToDuration: 300 * time.Millisecond,
		ScrollToEase:     tween.Power2Out,
	}
}

type subscription[T any] struct {
	id int
	fn T
}

// Scroller is a virtual bounded scroll source over [0, Extent]
// It stands in for a pinned scroll container: user input moves it, listeners
// observe it, and owners may reposition it silently or animate it
type Scroller struct {
	extent    float64
	scroll    float64
	direction int

	sched frame.Scheduler
	opts  Options
	log   *zap.Logger

	nextSub    int
	updateSubs []subscription[func(Update)]
	endSubs    []subscription[func()]

	anim      *tween.Tween
	frameID   frame.ID
	quiet     time.Duration
	awaitEnd  bool
	notifying int
	closed    bool
}

// New creates a scroller at offset 0
func New(extent float64, sched frame.Scheduler, opts Options) (*Scroller, error) {
	if extent <= 2 || math.IsNaN(extent) || math.IsInf(extent, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrExtent, extent)
	}
	if sched == nil {
		return nil, errors.New("scroll: nil scheduler")
	}

	def := DefaultOptions()
	if opts.EndDelay <= 0 {
		opts.EndDelay = def.EndDelay
	}
	if opts.ScrollToDuration <= 0 {
		opts.ScrollToDuration = def.ScrollToDuration
	}
	if opts.ScrollToEase == nil {
		opts.ScrollToEase = def.ScrollToEase
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Scroller{
		extent: extent,
		sched:  sched,
		opts:   opts,
		log:    log,
		anim:   tween.New(opts.ScrollToDuration.Seconds(), opts.ScrollToEase),
	}, nil
}

// --- Queries ---

// Scroll returns the current offset
func (s *Scroller) Scroll() float64 { return s.scroll }

// Extent returns the upper bound
func (s *Scroller) Extent() float64 { return s.extent }

// Progress returns offset normalized to [0, 1]
func (s *Scroller) Progress() float64 { return s.scroll / s.extent }

// Direction returns the sign of the last movement
func (s *Scroller) Direction() int { return s.direction }

// Animating reports whether a ScrollTo move is in flight
func (s *Scroller) Animating() bool { return s.anim.Active() }

// --- Subscriptions ---

// OnUpdate registers fn for every scroll change, returns its cancel func
func (s *Scroller) OnUpdate(fn func(Update)) (cancel func()) {
	s.nextSub++
	id := s.nextSub
	s.updateSubs = append(s.updateSubs, subscription[func(Update)]{id: id, fn: fn})
	return func() {
		for i, sub := range s.updateSubs {
			if sub.id == id {
				s.updateSubs = append(s.updateSubs[:i:i], s.updateSubs[i+1:]...)
				return
			}
		}
	}
}

// OnScrollEnd registers fn for the quiet period after movement
func (s *Scroller) OnScrollEnd(fn func()) (cancel func()) {
	s.nextSub++
	id := s.nextSub
	s.endSubs = append(s.endSubs, subscription[func()]{id: id, fn: fn})
	return func() {
		for i, sub := range s.endSubs {
			if sub.id == id {
				s.endSubs = append(s.endSubs[:i:i], s.endSubs[i+1:]...)
				return
			}
		}
	}
}

// Listeners returns the number of registered callbacks
func (s *Scroller) Listeners() int {
	return len(s.updateSubs) + len(s.endSubs)
}

// --- Movement ---

// ScrollBy applies user input, cancelling any animated move
// Input against a bound still notifies so owners can wrap
func (s *Scroller) ScrollBy(delta float64) {
	if s.closed || delta == 0 {
		return
	}
	s.anim.Stop()
	s.move(s.scroll+delta, sign(delta))
}

// SetScroll repositions immediately and notifies listeners
func (s *Scroller) SetScroll(v float64) {
	if s.closed {
		return
	}
	s.anim.Stop()
	target := vmath.Clamp(0, s.extent, v)
	if math.Abs(target-s.scroll) < moveTolerance {
		return
	}
	s.move(target, sign(target-s.scroll))
}

// ScrollTo animates toward v over the configured duration
func (s *Scroller) ScrollTo(v float64) {
	if s.closed {
		return
	}
	target := vmath.Clamp(0, s.extent, v)
	if math.Abs(target-s.scroll) < moveTolerance {
		s.anim.Stop()
		return
	}
	s.anim.Retarget(s.scroll, target)
	s.ensureFrame()
}

func (s *Scroller) move(v float64, dir int) {
	s.scroll = vmath.Clamp(0, s.extent, v)
	if dir != 0 {
		s.direction = dir
	}
	s.awaitEnd = true
	s.quiet = 0
	s.ensureFrame()
	s.notify(Update{Scroll: s.scroll, Progress: s.scroll / s.extent, Direction: dir})
}

func (s *Scroller) notify(u Update) {
	s.notifying++
	defer func() { s.notifying-- }()

	if s.notifying > 8 {
		// Listeners repositioning in a cycle; bail instead of overflowing the stack
		s.log.Warn("scroll notify recursion limit reached", zap.Float64("scroll", u.Scroll))
		return
	}

	subs := append([]subscription[func(Update)](nil), s.updateSubs...)
	for _, sub := range subs {
		if s.closed {
			return
		}
		sub.fn(u)
	}
}

// --- Frame loop ---

func (s *Scroller) ensureFrame() {
	if s.frameID != 0 || s.closed {
		return
	}
	s.frameID = s.sched.Request(s.onFrame)
}

func (s *Scroller) onFrame(dt time.Duration) {
	s.frameID = 0
	if s.closed {
		return
	}

	if s.anim.Active() {
		prev := s.scroll
		v, _ := s.anim.Step(dt.Seconds())
		s.move(v, sign(v-prev))
		return
	}

	if !s.awaitEnd {
		return
	}
	s.quiet += dt
	if s.quiet < s.opts.EndDelay {
		s.ensureFrame()
		return
	}

	s.awaitEnd = false
	subs := append([]subscription[func()](nil), s.endSubs...)
	for _, sub := range subs {
		if s.closed {
			return
		}
		sub.fn()
	}
}

// Close cancels the frame request and drops every listener
func (s *Scroller) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.anim.Stop()
	if s.frameID != 0 {
		s.sched.Cancel(s.frameID)
		s.frameID = 0
	}
	s.updateSubs = nil
	s.endSubs = nil
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
