package carousel

import "github.com/lixenwraith/termfolio/tween"

// Track names of the traversal path
const (
	TrackX       = "x"
	TrackRotateY = "rotateY"
	TrackOpacity = "opacity"
	TrackScale   = "scale"
	TrackZ       = "z"
	TrackZIndex  = "zIndex"
)

// Path shape constants, in percent of slot width and degrees
const (
	PathEnterX    = 250.0
	PathExitX     = -350.0
	PathRotate    = 50.0
	PathMinScale  = 0.5
	PathPopScale  = 1.25
	PathPopDepth  = 100.0
	pathRampRatio = 0.1 // fade/scale ramp length as a fraction of D
	pathPopAt     = 0.4 // depth pop start as a fraction of D
	pathFadeAt    = 0.9
)

// Pose is one item's visual state on the path
type Pose struct {
	// XPercent is the horizontal offset in percent of the slot width,
	// measured from the centred position's left edge
	XPercent float64
	RotateY  float64
	Opacity  float64
	Scale    float64
	Z        float64
	ZIndex   float64
}

// Path is the per-item traversal timeline of local duration D:
// enter right, ramp up, pop in the centre, ramp down, exit left
type Path struct {
	duration float64
	tl       *tween.Timeline

	x, rot, opacity, scale, z, zIndex *tween.Track
}

// NewPath builds the traversal timeline for n items over duration d
func NewPath(d float64, n int) *Path {
	tl := tween.NewTimeline()
	ramp := pathRampRatio * d

	p := &Path{
		duration: d,
		tl:       tl,
		x:        tl.Track(TrackX, PathEnterX),
		rot:      tl.Track(TrackRotateY, -PathRotate),
		opacity:  tl.Track(TrackOpacity, 0),
		scale:    tl.Track(TrackScale, PathMinScale),
		z:        tl.Track(TrackZ, 0),
		zIndex:   tl.Track(TrackZIndex, 1),
	}

	p.x.Add(tween.Segment{Duration: d, From: PathEnterX, To: PathExitX, Ease: tween.Power1InOut})
	p.rot.Add(tween.Segment{Duration: d, From: -PathRotate, To: PathRotate, Ease: tween.Power4InOut})

	p.opacity.
		Add(tween.Segment{Duration: ramp, From: 0, To: 1, Ease: tween.Power1Out}).
		Add(tween.Segment{Start: pathFadeAt * d, Duration: ramp, From: 1, To: 0, Ease: tween.Power1Out})

	p.scale.
		Add(tween.Segment{Duration: ramp, From: PathMinScale, To: 1, Ease: tween.Power1Out}).
		Add(tween.Segment{Start: pathPopAt * d, Duration: ramp, From: 1, To: PathPopScale, Ease: tween.Power1Out, Yoyo: true}).
		Add(tween.Segment{Start: pathFadeAt * d, Duration: ramp, From: 1, To: PathMinScale, Ease: tween.Power1Out})

	p.z.Add(tween.Segment{Start: pathPopAt * d, Duration: ramp, From: 0, To: PathPopDepth, Ease: tween.Power1Out, Yoyo: true})

	p.zIndex.Add(tween.Segment{Duration: d / 2, From: 1, To: float64(n), Ease: tween.Linear, Yoyo: true})

	return p
}

// Duration returns the local duration D
func (p *Path) Duration() float64 { return p.duration }

// Timeline exposes the underlying named tracks
func (p *Path) Timeline() *tween.Timeline { return p.tl }

// Sample returns the pose at local time t
func (p *Path) Sample(t float64) Pose {
	return Pose{
		XPercent: p.x.Sample(t),
		RotateY:  p.rot.Sample(t),
		Opacity:  p.opacity.Sample(t),
		Scale:    p.scale.Sample(t),
		Z:        p.z.Sample(t),
		ZIndex:   p.zIndex.Sample(t),
	}
}
