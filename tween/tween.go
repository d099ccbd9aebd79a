package tween

import "github.com/lixenwraith/termfolio/vmath"

// Tween drives one value toward a target over a fixed duration
// Retargeting replaces the running interpolation outright
type Tween struct {
	duration float64
	ease     Ease

	from    float64
	to      float64
	elapsed float64
	value   float64
	active  bool
}

// New creates an idle tween; duration is in seconds
func New(duration float64, ease Ease) *Tween {
	if ease == nil {
		ease = Linear
	}
	return &Tween{duration: duration, ease: ease}
}

// Retarget restarts the interpolation from from to to
func (tw *Tween) Retarget(from, to float64) {
	tw.from = from
	tw.to = to
	tw.elapsed = 0
	tw.value = from
	tw.active = true

	if tw.duration <= 0 || vmath.NearlyEqual(from, to) {
		tw.value = to
		tw.active = false
	}
}

// Jump sets value and target without animating
func (tw *Tween) Jump(v float64) {
	tw.from = v
	tw.to = v
	tw.value = v
	tw.elapsed = 0
	tw.active = false
}

// Step advances by dt seconds, returns the new value and whether it finished
func (tw *Tween) Step(dt float64) (float64, bool) {
	if !tw.active {
		return tw.value, true
	}

	tw.elapsed += dt
	if tw.elapsed >= tw.duration {
		tw.value = tw.to
		tw.active = false
		return tw.value, true
	}

	tw.value = vmath.Lerp(tw.from, tw.to, tw.ease(tw.elapsed/tw.duration))
	return tw.value, false
}

// Stop freezes the tween at its current value
func (tw *Tween) Stop() {
	tw.active = false
}

// Value returns the last computed value
func (tw *Tween) Value() float64 { return tw.value }

// Target returns the destination of the current or last run
func (tw *Tween) Target() float64 { return tw.to }

// Active reports whether an interpolation is in flight
func (tw *Tween) Active() bool { return tw.active }

// Duration returns the configured run length in seconds
func (tw *Tween) Duration() float64 { return tw.duration }
