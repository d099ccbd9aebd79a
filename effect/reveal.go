package effect

import (
	"time"

	"github.com/lixenwraith/termfolio/tween"
	"github.com/lixenwraith/termfolio/vmath"
)

// RevealSpec describes a staggered entrance; Y is in pixels of the original layout
type RevealSpec struct {
	Duration  time.Duration
	Stagger   time.Duration
	Ease      tween.Ease
	FromY     float64
	FromScale float64
}

// Entrance presets
var (
	SkillsReveal = RevealSpec{
		Duration:  500 * time.Millisecond,
		Stagger:   60 * time.Millisecond,
		Ease:      tween.Power2Out,
		FromY:     24,
		FromScale: 0.8,
	}
	ExperienceReveal = RevealSpec{
		Duration:  800 * time.Millisecond,
		Stagger:   200 * time.Millisecond,
		Ease:      tween.Power2Out,
		FromY:     60,
		FromScale: 0.9,
	}
)

// RevealFrame is one item's entrance state
type RevealFrame struct {
	Opacity float64
	Y       float64
	Scale   float64
}

// Reveal plays a one-shot staggered entrance over count items
type Reveal struct {
	spec    RevealSpec
	count   int
	started bool
	elapsed time.Duration
}

// NewReveal creates an untriggered reveal
func NewReveal(spec RevealSpec, count int) *Reveal {
	if spec.Ease == nil {
		spec.Ease = tween.Power2Out
	}
	return &Reveal{spec: spec, count: max(count, 0)}
}

// Trigger starts the entrance; later calls are ignored
func (r *Reveal) Trigger() {
	r.started = true
}

// Triggered reports whether the entrance has started
func (r *Reveal) Triggered() bool { return r.started }

// SetCount changes the item count without restarting
func (r *Reveal) SetCount(n int) { r.count = max(n, 0) }

// Step advances a triggered reveal
func (r *Reveal) Step(dt time.Duration) {
	if !r.started || r.Done() {
		return
	}
	r.elapsed += dt
}

// Total returns the time until the last item settles
func (r *Reveal) Total() time.Duration {
	if r.count == 0 {
		return 0
	}
	return r.spec.Duration + time.Duration(r.count-1)*r.spec.Stagger
}

// Done reports a finished entrance
func (r *Reveal) Done() bool {
	return r.started && r.elapsed >= r.Total()
}

// Item returns the frame for item i
func (r *Reveal) Item(i int) RevealFrame {
	if !r.started {
		return RevealFrame{Y: r.spec.FromY, Scale: r.spec.FromScale}
	}
	local := r.elapsed - time.Duration(i)*r.spec.Stagger
	t := 1.0
	if r.spec.Duration > 0 {
		t = vmath.Clamp(0, 1, local.Seconds()/r.spec.Duration.Seconds())
	}
	if t >= 1 {
		return RevealFrame{Opacity: 1, Scale: 1}
	}
	e := r.spec.Ease(t)
	return RevealFrame{
		Opacity: e,
		Y:       vmath.Lerp(r.spec.FromY, 0, e),
		Scale:   vmath.Lerp(r.spec.FromScale, 1, e),
	}
}
