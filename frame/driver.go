package frame

import "time"

const (
	// LagThreshold is the tick gap treated as a stall (suspended process, debugger)
	LagThreshold = 500 * time.Millisecond
	// LagAdjust replaces the delta after a stall so tweens resume instead of jumping
	LagAdjust = 33 * time.Millisecond
)

// ID identifies a pending frame request, zero is never issued
type ID uint64

// Callback receives the time elapsed since the previous tick
type Callback func(dt time.Duration)

// Scheduler is the subset of Driver used by animated components
type Scheduler interface {
	Request(fn Callback) ID
	Cancel(id ID)
}

type request struct {
	id ID
	fn Callback
}

// Driver is an animation-frame scheduler for a single-threaded loop
// Callbacks requested during a tick run on the following tick
// Not safe for concurrent use; the owning loop serializes all calls
type Driver struct {
	clock Clock

	nextID  ID
	pending []request
	running []request

	last    time.Time
	delta   time.Duration
	started bool
	closed  bool

	ticks    uint64
	executed uint64
}

// NewDriver creates a driver reading time from clock
func NewDriver(clock Clock) *Driver {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Driver{clock: clock}
}

// Request schedules fn for the next tick, returns 0 once the driver is closed
func (d *Driver) Request(fn Callback) ID {
	if d.closed || fn == nil {
		return 0
	}
	d.nextID++
	d.pending = append(d.pending, request{id: d.nextID, fn: fn})
	return d.nextID
}

// Cancel drops a pending request; unknown or already-run IDs are ignored
func (d *Driver) Cancel(id ID) {
	if id == 0 {
		return
	}
	for i := range d.pending {
		if d.pending[i].id == id {
			d.pending = append(d.pending[:i], d.pending[i+1:]...)
			return
		}
	}
	// Cancelled from inside a callback of the current batch
	for i := range d.running {
		if d.running[i].id == id {
			d.running[i].fn = nil
			return
		}
	}
}

// Tick runs every callback pending at entry
func (d *Driver) Tick() {
	now := d.clock.Now()
	var dt time.Duration
	if d.started {
		dt = now.Sub(d.last)
		if dt > LagThreshold {
			dt = LagAdjust
		}
		if dt < 0 {
			dt = 0
		}
	}
	d.last = now
	d.delta = dt
	d.started = true
	d.ticks++

	if d.closed || len(d.pending) == 0 {
		return
	}

	d.running, d.pending = d.pending, nil
	for i := range d.running {
		if d.closed {
			break
		}
		fn := d.running[i].fn
		if fn == nil {
			continue
		}
		d.executed++
		fn(dt)
	}
	d.running = d.running[:0]
}

// Delta returns the elapsed time seen by the latest tick
func (d *Driver) Delta() time.Duration {
	return d.delta
}

// Pending returns the number of queued requests
func (d *Driver) Pending() int {
	return len(d.pending)
}

// Ticks returns how many times Tick was called
func (d *Driver) Ticks() uint64 {
	return d.ticks
}

// Executed returns how many callbacks have run
func (d *Driver) Executed() uint64 {
	return d.executed
}

// Close drops all requests; later requests are ignored
func (d *Driver) Close() {
	d.closed = true
	d.pending = nil
	for i := range d.running {
		d.running[i].fn = nil
	}
}

// Closed reports whether Close was called
func (d *Driver) Closed() bool {
	return d.closed
}

// Interval converts a frame rate to a tick interval
func Interval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}
