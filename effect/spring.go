package effect

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// settleEpsilon is the distance and speed below which a spring counts as resting
const settleEpsilon = 1e-3

// Spring is a critically-damped-by-default value follower
// Update is meant to be called once per frame at the fps it was built for
type Spring struct {
	spring harmonica.Spring
	Pos    float64
	Vel    float64
}

// NewSpring builds a spring for the given frame rate
func NewSpring(fps int, frequency, damping float64) *Spring {
	if fps <= 0 {
		fps = 60
	}
	return &Spring{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// Update moves one frame toward target and returns the new position
func (s *Spring) Update(target float64) float64 {
	s.Pos, s.Vel = s.spring.Update(s.Pos, s.Vel, target)
	if s.Settled(target) {
		s.Pos, s.Vel = target, 0
	}
	return s.Pos
}

// Settled reports whether the spring rests at target
func (s *Spring) Settled(target float64) bool {
	return math.Abs(s.Pos-target) < settleEpsilon && math.Abs(s.Vel) < settleEpsilon
}

// Float bobs a value around zero, smoothed by a spring so amplitude changes ease in
type Float struct {
	spring    *Spring
	amplitude float64
	period    time.Duration
	elapsed   time.Duration
}

// NewFloat creates a bobbing offset of the given amplitude and period
func NewFloat(fps int, amplitude float64, period time.Duration) *Float {
	if period <= 0 {
		period = 3 * time.Second
	}
	return &Float{
		spring:    NewSpring(fps, 4, 1),
		amplitude: amplitude,
		period:    period,
	}
}

// Step advances one frame
func (f *Float) Step(dt time.Duration) {
	f.elapsed = (f.elapsed + dt) % f.period
	phase := 2 * math.Pi * f.elapsed.Seconds() / f.period.Seconds()
	f.spring.Update(f.amplitude * math.Sin(phase))
}

// Offset returns the current displacement
func (f *Float) Offset() float64 { return f.spring.Pos }

// Rows returns the displacement rounded to whole cells
func (f *Float) Rows() int { return int(math.Round(f.spring.Pos)) }
