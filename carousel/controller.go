package carousel

import (
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/termfolio/frame"
	"github.com/lixenwraith/termfolio/scroll"
	"github.com/lixenwraith/termfolio/tween"
	"github.com/lixenwraith/termfolio/vmath"
)

// Item is one carousel entry
type Item struct {
	Key   string
	Title string
	Image string
}

// ScrollSource is a bounded scroll container the carousel is pinned to
type ScrollSource interface {
	Scroll() float64
	Extent() float64
	Progress() float64
	Animating() bool
	OnUpdate(fn func(scroll.Update)) (cancel func())
	OnScrollEnd(fn func()) (cancel func())
	// SetScroll repositions immediately and notifies listeners
	SetScroll(v float64)
	// ScrollTo animates toward v
	ScrollTo(v float64)
}

// Placement is what a surface slot receives per frame
type Placement struct {
	Item    Item
	Index   int
	Pose    Pose
	Visible bool
	// Order is the draw rank, 0 first; higher ranks paint over lower ones
	Order int
}

// Surface is the render target with one slot per item
type Surface interface {
	Slots() int
	Place(slot int, p Placement)
	Commit()
}

// Controller drives an infinite, scroll-synced carousel
// All methods must be called from the goroutine owning the scheduler
type Controller struct {
	items []Item
	path  *Path
	loop  *Loop
	state State
	opts  options
	log   *zap.Logger

	source  ScrollSource
	surface Surface
	sched   frame.Scheduler

	settle  *tween.Tween
	frameID frame.ID
	cancels []func()

	// commit is the last snapped target handed to an animated scroll;
	// consecutive steps build on it while the source is still moving
	commit    float64
	committed bool

	lastSnap int
	closed   bool
	order    []int
}

// New builds a controller bound to source and renders the first frame
func New(items []Item, surface Surface, source ScrollSource, sched frame.Scheduler, opts ...Option) (*Controller, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if surface == nil || source == nil || sched == nil {
		return nil, ErrMissingDependency
	}
	if surface.Slots() < len(items) {
		return nil, fmt.Errorf("%w: %d slots for %d items", ErrSurfaceTooSmall, surface.Slots(), len(items))
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	n := len(items)
	c := &Controller{
		items:    make([]Item, n),
		path:     NewPath(o.duration, n),
		loop:     NewLoop(n, o.stagger, o.duration, o.offset),
		opts:     o,
		log:      o.log,
		source:   source,
		surface:  surface,
		sched:    sched,
		settle:   tween.New(o.settle.Seconds(), o.settleEase),
		lastSnap: -1,
		order:    make([]int, n),
	}
	for i, it := range items {
		if it.Key == "" {
			it.Key = fmt.Sprint(i)
		}
		c.items[i] = it
	}

	if !c.loop.Seamless() {
		c.log.Warn("carousel cycle shorter than item duration, wrap will be visible",
			zap.Int("items", n),
			zap.Float64("cycle", c.loop.Cycle()),
			zap.Float64("duration", o.duration))
	}

	c.state = c.state.bind(source.Progress(), c.loop.Cycle())
	c.state = c.state.settle(c.state.Target)
	c.settle.Jump(c.state.Target)

	c.cancels = append(c.cancels,
		source.OnUpdate(c.onScrollUpdate),
		source.OnScrollEnd(c.onScrollEnd),
	)

	c.Render()
	return c, nil
}

// --- Queries ---

// Len returns the number of items
func (c *Controller) Len() int { return len(c.items) }

// Items returns a copy of the item list
func (c *Controller) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// CycleDuration returns stagger × N
func (c *Controller) CycleDuration() float64 { return c.loop.Cycle() }

// Position returns the target position
func (c *Controller) Position() float64 { return c.state.Target }

// Playhead returns the rendered position
func (c *Controller) Playhead() float64 { return c.state.Playhead }

// Iteration returns the number of cycles crossed
func (c *Controller) Iteration() int { return c.state.Iteration }

// State returns a snapshot of the controller state
func (c *Controller) State() State { return c.state }

// Current returns the index of the item nearest the centre at the target
func (c *Controller) Current() int { return c.indexAt(c.state.Target) }

// Settling reports whether the playhead is still catching up
func (c *Controller) Settling() bool { return c.settle.Active() }

// Pose returns the item's pose at the playhead and whether it is on its path
func (c *Controller) Pose(item int) (Pose, bool) {
	if item < 0 || item >= len(c.items) {
		return Pose{}, false
	}
	local, _, ok := c.loop.Resolve(item, c.state.Playhead)
	if !ok {
		return Pose{}, false
	}
	return c.path.Sample(local), true
}

func (c *Controller) indexAt(position float64) int {
	return vmath.WrapInt(len(c.items), int(math.Round((position+c.opts.offset)/c.opts.stagger)))
}

// snap rounds position to the nearest position that centres an item
func (c *Controller) snap(position float64) float64 {
	return vmath.Snap(c.step(), position+c.opts.offset) - c.opts.offset
}

func (c *Controller) step() float64 { return c.loop.Cycle() / float64(len(c.items)) }

// --- Scroll binding ---

// BindScroll maps scroll progress to a target in the current iteration and
// starts the playhead toward it
func (c *Controller) BindScroll(progress float64) error {
	if math.IsNaN(progress) || progress < 0 || progress > 1 {
		return fmt.Errorf("%w: %v", ErrProgressOutOfRange, progress)
	}
	if c.closed || c.state.Dragging {
		return nil
	}
	c.state = c.state.bind(progress, c.loop.Cycle())
	c.restartSettle()
	return nil
}

func (c *Controller) onScrollUpdate(u scroll.Update) {
	if c.closed || c.state.Dragging {
		return
	}
	extent := c.source.Extent()
	switch {
	case u.Scroll > extent-1:
		c.wrap(1, 1)
	case u.Scroll < 1 && u.Direction < 0:
		c.wrap(-1, extent-1)
	case c.committed && c.atCommit(u.Scroll):
		// Scroll values are clamped off the bounds, so the commit is exact
		// where the progress would not be
		c.land(c.commit)
	default:
		if err := c.BindScroll(vmath.Clamp(0, 1, u.Progress)); err != nil {
			c.log.Debug("scroll update rejected", zap.Error(err))
		}
	}
}

// wrap crosses a cycle boundary; the source repositioning re-enters
// onScrollUpdate and rebinds within the new iteration
func (c *Controller) wrap(delta int, to float64) {
	c.state = c.state.wrap(delta)
	c.log.Debug("carousel wrap",
		zap.Int("delta", delta),
		zap.Int("iteration", c.state.Iteration),
		zap.Float64("reposition", to))
	c.source.SetScroll(to)
}

func (c *Controller) onScrollEnd() {
	if c.closed || c.state.Dragging {
		return
	}
	target := c.state.Target
	if c.committed && c.atCommit(c.source.Scroll()) {
		target = c.commit
	}
	c.committed = false
	c.snapTo(target, false)
}

// atCommit reports whether scroll value v is where the pending commit rests
func (c *Controller) atCommit(v float64) bool {
	value, delta := c.scrollFor(c.commit)
	return delta == 0 && math.Abs(value-v) < vmath.Epsilon
}

// land pins the target to a snapped position and settles toward it
func (c *Controller) land(position float64) {
	c.committed = false
	c.state = c.state.land(position)
	c.restartSettle()
}

// scrollFor converts a position to a scroll value, wrapping the iteration
// first when the position lies outside the current one
func (c *Controller) scrollFor(position float64) (value float64, wrapDelta int) {
	cycle := c.loop.Cycle()
	progress := (position - cycle*float64(c.state.Iteration)) / cycle
	if progress >= 1 || progress < 0 {
		wrapDelta = int(math.Floor(progress))
	}
	extent := c.source.Extent()
	value = vmath.Clamp(1, extent-1, vmath.Wrap(0, 1, progress)*extent)
	return value, wrapDelta
}

// snapTo snaps position to the nearest item and moves the scroll source
// there; animate selects ScrollTo over an immediate reposition
func (c *Controller) snapTo(position float64, animate bool) {
	snapped := c.snap(position)
	value, delta := c.scrollFor(snapped)

	idx := c.indexAt(snapped)
	if idx != c.lastSnap {
		c.lastSnap = idx
		if c.opts.onSnap != nil {
			c.opts.onSnap(idx)
		}
	}

	if delta != 0 || !animate {
		if delta != 0 {
			c.state = c.state.wrap(delta)
			c.log.Debug("carousel snap wrap", zap.Int("delta", delta), zap.Int("iteration", c.state.Iteration))
		}
		c.committed = false
		c.source.SetScroll(value)
		// The reposition rebinds from a clamped scroll value; pin the
		// target to the boundary itself
		c.land(snapped)
		return
	}

	c.commit, c.committed = snapped, true
	c.source.ScrollTo(value)
	if !c.source.Animating() {
		// Already there
		c.land(snapped)
	}
}

// --- Commands ---

// Advance moves one item forward (+1) or backward (-1)
func (c *Controller) Advance(direction int) error {
	if direction != 1 && direction != -1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDirection, direction)
	}
	c.moveBy(direction)
	return nil
}

// Select brings item target to the centre along the shorter way round
func (c *Controller) Select(target int) error {
	n := len(c.items)
	if target < 0 || target >= n {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, target, n)
	}
	c.moveBy(c.shortestSteps(c.base(), target))
	return nil
}

// ShortestSteps returns the signed step count from the current item to target
func (c *Controller) ShortestSteps(target int) int {
	return c.shortestSteps(c.base(), target)
}

func (c *Controller) shortestSteps(from float64, target int) int {
	n := len(c.items)
	bump := target - c.indexAt(from)
	switch {
	case 2*bump > n:
		bump -= n
	case -2*bump > n:
		bump += n
	case 2*bump == n || -2*bump == n:
		// Opposite item, either way is as short
		bump = c.opts.direction * n / 2
	}
	return bump
}

// base is where the next step starts: the pending snap while the source is
// still animating toward it, otherwise the target
func (c *Controller) base() float64 {
	if c.committed && c.source.Animating() {
		return c.commit
	}
	return c.state.Target
}

func (c *Controller) moveBy(steps int) {
	if c.closed || c.state.Dragging {
		return
	}
	c.snapTo(c.base()+float64(steps)*c.step(), true)
}

// --- Drag ---

// BeginDrag starts a pointer pan from the current target
func (c *Controller) BeginDrag() {
	if c.closed || c.state.Dragging {
		return
	}
	c.committed = false
	c.state = c.state.beginDrag()
}

// Drag pans by the pointer travel since BeginDrag
func (c *Controller) Drag(delta float64) {
	if c.closed || !c.state.Dragging {
		return
	}
	c.state = c.state.drag(delta, c.opts.dragScale)
	c.restartSettle()
}

// Dragging reports whether a pan is active
func (c *Controller) Dragging() bool { return c.state.Dragging }

// EndDrag snaps to the nearest item and syncs the scroll source to it
func (c *Controller) EndDrag() {
	if c.closed || !c.state.Dragging {
		return
	}
	c.state = c.state.endDrag()
	c.snapTo(c.state.Target, false)
}

// --- Frame loop ---

func (c *Controller) restartSettle() {
	c.settle.Retarget(c.state.Playhead, c.state.Target)
	if !c.settle.Active() {
		c.state = c.state.settle(c.settle.Value())
		c.Render()
		return
	}
	c.ensureFrame()
}

func (c *Controller) ensureFrame() {
	if c.frameID != 0 || c.closed {
		return
	}
	c.frameID = c.sched.Request(c.onFrame)
}

func (c *Controller) onFrame(dt time.Duration) {
	c.frameID = 0
	if c.closed {
		return
	}
	v, done := c.settle.Step(dt.Seconds())
	c.state = c.state.settle(v)
	c.Render()
	if !done {
		c.ensureFrame()
	}
}

// Render places every item on the surface at the playhead
func (c *Controller) Render() {
	if c.closed {
		return
	}
	n := len(c.items)
	poses := make([]Pose, n)
	visible := make([]bool, n)
	for i := 0; i < n; i++ {
		poses[i], visible[i] = c.Pose(i)
		c.order[i] = i
	}
	sort.SliceStable(c.order, func(a, b int) bool {
		return poses[c.order[a]].ZIndex < poses[c.order[b]].ZIndex
	})
	for rank, i := range c.order {
		c.surface.Place(i, Placement{
			Item:    c.items[i],
			Index:   i,
			Pose:    poses[i],
			Visible: visible[i],
			Order:   rank,
		})
	}
	c.surface.Commit()
}

// Close unsubscribes from the source and cancels pending work
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	for _, cancel := range c.cancels {
		cancel()
	}
	c.cancels = nil
	c.settle.Stop()
	if c.frameID != 0 {
		c.sched.Cancel(c.frameID)
		c.frameID = 0
	}
}
