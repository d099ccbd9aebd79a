package carousel

import (
	"math"

	"github.com/lixenwraith/termfolio/vmath"
)

// Copies is the number of item-list repetitions laid along the master loop
const Copies = 3

// Loop is the master timeline: three copies of the item list staggered one
// after another, played over a window that wraps every cycle
type Loop struct {
	n        int
	stagger  float64
	duration float64
	offset   float64

	starts [Copies][]float64
}

// NewLoop lays out n items with the given stagger and per-item duration
func NewLoop(n int, stagger, duration, offset float64) *Loop {
	l := &Loop{n: n, stagger: stagger, duration: duration, offset: offset}
	for c := 0; c < Copies; c++ {
		l.starts[c] = make([]float64, n)
		for i := 0; i < n; i++ {
			l.starts[c][i] = stagger * float64(c*n+i)
		}
	}
	return l
}

// Cycle returns the span of one loop pass, stagger × N
func (l *Loop) Cycle() float64 { return l.stagger * float64(l.n) }

// Start returns the master time mapped to position 0
func (l *Loop) Start() float64 { return l.Cycle() + l.duration/2 + l.offset }

// Offset returns the start offset of one item copy
func (l *Loop) Offset(copy, item int) float64 { return l.starts[copy][item] }

// LocalTime returns where a copy of an item sits on its own path
func (l *Loop) LocalTime(copy, item int, position float64) float64 {
	return l.Start() + vmath.Wrap(0, l.Cycle(), position) - l.starts[copy][item]
}

// Resolve picks the copy of item that is on its path and closest to the
// centre; ok is false when every copy is off-path
func (l *Loop) Resolve(item int, position float64) (local float64, copy int, ok bool) {
	centre := l.duration / 2
	best := math.Inf(1)
	copy = -1
	for c := 0; c < Copies; c++ {
		t := l.LocalTime(c, item, position)
		if t < 0 || t >= l.duration {
			continue
		}
		if d := math.Abs(t - centre); d < best {
			best, local, copy = d, t, c
		}
	}
	return local, copy, copy >= 0
}

// Seamless reports whether the cycle is long enough that no item is on its
// path at two copies at once
func (l *Loop) Seamless() bool {
	return l.Cycle() >= l.duration-vmath.Epsilon
}
