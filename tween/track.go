package tween

import (
	"sort"

	"github.com/lixenwraith/termfolio/vmath"
)

// Segment animates one value from From to To starting at Start
// Yoyo plays the segment forward then backward, doubling its span
type Segment struct {
	Start    float64
	Duration float64
	From     float64
	To       float64
	Ease     Ease
	Yoyo     bool
}

// End returns the local time at which the segment stops changing
func (s Segment) End() float64 {
	span := s.Duration
	if s.Yoyo {
		span *= 2
	}
	return s.Start + span
}

// valueAt samples the segment at local time relative to Start
func (s Segment) valueAt(local float64) float64 {
	ease := s.Ease
	if ease == nil {
		ease = Linear
	}

	if s.Duration <= 0 {
		if s.Yoyo {
			return s.From
		}
		return s.To
	}

	var p float64
	switch {
	case local <= 0:
		p = 0
	case !s.Yoyo:
		p = vmath.Clamp(0, 1, local/s.Duration)
	case local >= 2*s.Duration:
		p = 0
	case local > s.Duration:
		// Return leg reuses the same curve mirrored in time
		p = (2*s.Duration - local) / s.Duration
	default:
		p = local / s.Duration
	}

	return vmath.Lerp(s.From, s.To, ease(p))
}

// Track is an ordered set of segments driving a single value
// A segment takes over once its start has passed; later starts win
type Track struct {
	Initial  float64
	segments []Segment
}

// NewTrack creates a track holding initial until the first segment starts
func NewTrack(initial float64) *Track {
	return &Track{Initial: initial}
}

// Add inserts a segment keeping start order; equal starts keep insertion order
func (t *Track) Add(seg Segment) *Track {
	i := sort.Search(len(t.segments), func(i int) bool {
		return t.segments[i].Start > seg.Start
	})
	t.segments = append(t.segments, Segment{})
	copy(t.segments[i+1:], t.segments[i:])
	t.segments[i] = seg
	return t
}

// Sample returns the track value at local time at
func (t *Track) Sample(at float64) float64 {
	v := t.Initial
	for _, s := range t.segments {
		if at < s.Start {
			break
		}
		v = s.valueAt(at - s.Start)
	}
	return v
}

// Duration returns the latest segment end
func (t *Track) Duration() float64 {
	var d float64
	for _, s := range t.segments {
		if e := s.End(); e > d {
			d = e
		}
	}
	return d
}

// Segments returns a copy of the segment list
func (t *Track) Segments() []Segment {
	out := make([]Segment, len(t.segments))
	copy(out, t.segments)
	return out
}

// Timeline groups named tracks sharing one local clock
type Timeline struct {
	tracks map[string]*Track
	names  []string
}

// NewTimeline creates an empty timeline
func NewTimeline() *Timeline {
	return &Timeline{tracks: make(map[string]*Track)}
}

// Track returns the named track, creating it with initial if absent
func (tl *Timeline) Track(name string, initial float64) *Track {
	if tr, ok := tl.tracks[name]; ok {
		return tr
	}
	tr := NewTrack(initial)
	tl.tracks[name] = tr
	tl.names = append(tl.names, name)
	return tr
}

// Value samples the named track; unknown names read as zero
func (tl *Timeline) Value(name string, at float64) float64 {
	tr, ok := tl.tracks[name]
	if !ok {
		return 0
	}
	return tr.Sample(at)
}

// Sample fills dst with every track value at local time at
func (tl *Timeline) Sample(at float64, dst map[string]float64) {
	for _, name := range tl.names {
		dst[name] = tl.tracks[name].Sample(at)
	}
}

// Duration is the longest track duration
func (tl *Timeline) Duration() float64 {
	var d float64
	for _, tr := range tl.tracks {
		if td := tr.Duration(); td > d {
			d = td
		}
	}
	return d
}

// Names returns track names in creation order
func (tl *Timeline) Names() []string {
	out := make([]string, len(tl.names))
	copy(out, tl.names)
	return out
}
