package frame

import (
	"sync"
	"time"
)

// Clock supplies monotonic time to the frame driver
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real monotonic clock
type SystemClock struct{}

// Now returns the current time with monotonic clock reading
func (SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock is a hand-driven clock for deterministic frame tests
type MockClock struct {
	mu    sync.Mutex
	start time.Time
	now   time.Time
}

// NewMockClock starts a clock at start
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{start: start, now: start}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set jumps to t; moving backward is allowed to exercise skew handling
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the clock forward by d and returns the new time
func (m *MockClock) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}

// Elapsed returns the mocked time since the clock was created
func (m *MockClock) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now.Sub(m.start)
}

// Frames advances by interval and ticks d, n times over
func (m *MockClock) Frames(d *Driver, n int, interval time.Duration) {
	for i := 0; i < n; i++ {
		m.Advance(interval)
		d.Tick()
	}
}
