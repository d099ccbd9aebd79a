package effect

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/termfolio/render"
	"github.com/lixenwraith/termfolio/vmath"
)

// Overlay shape constants
const (
	GooShowFrom   = 0.03
	GooShowUntil  = 0.98
	gooTimeScale  = 0.15
	gooScrollRate = 1.5
	gooBaseAlpha  = 0.10
	gooGooAlpha   = 0.22
	gooEdgeLow    = 0.35
	gooEdgeHigh   = 0.85
)

// Goo is a full-screen metaball tint that drifts with time and page progress
type Goo struct {
	blobs   int
	elapsed time.Duration
	scroll  float64
	visible bool
	fade    *Spring
}

// NewGoo creates a hidden overlay of n blobs
func NewGoo(blobs, fps int) *Goo {
	if blobs <= 0 {
		blobs = 3
	}
	return &Goo{blobs: blobs, fade: NewSpring(fps, 8, 1)}
}

// SetProgress feeds page progress in [0, 1]; it drives both visibility and drift
func (g *Goo) SetProgress(p float64) {
	g.scroll = p
	g.visible = p > GooShowFrom && p < GooShowUntil
}

// Visible reports whether the overlay is fading in or shown
func (g *Goo) Visible() bool { return g.visible }

// Step advances time and eases the opacity toward its target
func (g *Goo) Step(dt time.Duration) {
	g.elapsed += dt
	target := 0.0
	if g.visible {
		target = 1
	}
	g.fade.Update(target)
}

// Opacity returns the eased overlay opacity
func (g *Goo) Opacity() float64 {
	return vmath.Clamp(0, 1, g.fade.Pos)
}

func (g *Goo) time() float64 {
	return g.elapsed.Seconds()*gooTimeScale + g.scroll*gooScrollRate
}

// Intensity sums the blob field at normalized (u, v), v growing downward
func (g *Goo) Intensity(u, v float64) float64 {
	t := g.time()
	sum := 0.0
	for i := 0; i < g.blobs; i++ {
		id := float64(i)
		phase := t + id*1.6
		x := 0.25 + 0.5*vmath.Fract(id/3) + 0.2*math.Sin(phase+id*2.5)
		y := 0.30 + 0.4*vmath.Fract(id/4) + 0.18*math.Cos(phase*0.9+id)
		radius := 0.18 + 0.04*math.Sin(phase*1.3+id*1.2)
		d := math.Hypot(u-x, v-y)
		sum += radius / (d*15 + 0.02)
	}
	return sum
}

// Sample returns the tint colour and alpha at (u, v) before the overlay opacity
func (g *Goo) Sample(u, v float64) (colorful.Color, float64) {
	goo := vmath.Smoothstep(gooEdgeLow, gooEdgeHigh, g.Intensity(u, v))
	yellow := vmath.Lerp(1, 0.8, v)
	return colorful.Color{R: yellow, G: yellow, B: 0}, gooBaseAlpha + gooGooAlpha*goo*goo
}

// Draw tints every cell of c
func (g *Goo) Draw(c *render.Canvas) {
	opacity := g.Opacity()
	if opacity <= 0.01 {
		return
	}
	w, h := c.Size()
	if w == 0 || h == 0 {
		return
	}
	for y := 0; y < h; y++ {
		v := (float64(y) + 0.5) / float64(h)
		for x := 0; x < w; x++ {
			u := (float64(x) + 0.5) / float64(w)
			col, alpha := g.Sample(u, v)
			c.Tint(x, y, render.FromColorful(col), alpha*opacity)
		}
	}
}
