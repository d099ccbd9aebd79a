package carousel

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/termfolio/tween"
)

// Defaults tuned so that four items fill exactly one path duration
const (
	DefaultStagger   = 0.25
	DefaultDuration  = 1.0
	DefaultSettle    = 250 * time.Millisecond
	DefaultDragScale = 0.01
)

type options struct {
	stagger    float64
	duration   float64
	offset     float64
	settle     time.Duration
	settleEase tween.Ease
	dragScale  float64
	direction  int
	log        *zap.Logger
	onSnap     func(index int)
}

func defaultOptions() options {
	return options{
		stagger:    DefaultStagger,
		duration:   DefaultDuration,
		settle:     DefaultSettle,
		settleEase: tween.Power3Out,
		dragScale:  DefaultDragScale,
		direction:  1,
		log:        zap.NewNop(),
	}
}

func (o options) validate() error {
	switch {
	case !(o.stagger > 0) || math.IsInf(o.stagger, 0):
		return fmt.Errorf("%w: stagger %v", ErrInvalidOption, o.stagger)
	case !(o.duration > 0) || math.IsInf(o.duration, 0):
		return fmt.Errorf("%w: duration %v", ErrInvalidOption, o.duration)
	case o.settle < 0:
		return fmt.Errorf("%w: settle %v", ErrInvalidOption, o.settle)
	case !(o.dragScale > 0):
		return fmt.Errorf("%w: drag scale %v", ErrInvalidOption, o.dragScale)
	case o.direction != 1 && o.direction != -1:
		return fmt.Errorf("%w: default direction %d", ErrInvalidOption, o.direction)
	case o.settleEase == nil:
		return fmt.Errorf("%w: nil settle ease", ErrInvalidOption)
	}
	return nil
}

// Option configures a Controller
type Option func(*options)

// WithStagger sets the spacing between consecutive items on the loop
func WithStagger(s float64) Option { return func(o *options) { o.stagger = s } }

// WithDuration sets the time one item takes to traverse its path
func WithDuration(d float64) Option { return func(o *options) { o.duration = d } }

// WithOffset shifts which position is considered centred
func WithOffset(off float64) Option { return func(o *options) { o.offset = off } }

// WithSettle sets how long the playhead takes to catch up with the target
func WithSettle(d time.Duration) Option { return func(o *options) { o.settle = d } }

// WithSettleEase sets the catch-up curve
func WithSettleEase(e tween.Ease) Option { return func(o *options) { o.settleEase = e } }

// WithDragScale sets timeline units per unit of pointer travel
func WithDragScale(s float64) Option { return func(o *options) { o.dragScale = s } }

// WithDefaultDirection picks the way Select goes when both ways are equally short
func WithDefaultDirection(dir int) Option { return func(o *options) { o.direction = dir } }

// WithLogger attaches a logger; nil keeps the no-op logger
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithSnapHook registers fn for every committed snap
func WithSnapHook(fn func(index int)) Option { return func(o *options) { o.onSnap = fn } }
