package simulator

import "sync/atomic"

// Clock is the animation frame counter. One goroutine ticks it; any number
// may read it.
type Clock struct {
	frame atomic.Int64
	max   int
}

// NewClock returns a clock at frame 0 whose route is complete at max.
func NewClock(max int) *Clock {
	return &Clock{max: max}
}

// Tick advances the clock by one frame and returns the new frame.
func (c *Clock) Tick() int {
	return int(c.frame.Add(1))
}

// Frame returns the current frame.
func (c *Clock) Frame() int {
	return int(c.frame.Load())
}

// Max returns the frame at which the route is fully traversed.
func (c *Clock) Max() int {
	return c.max
}

// Done reports whether the clock has reached Max.
func (c *Clock) Done() bool {
	return c.Frame() >= c.max
}

// Reset rewinds the clock to frame 0.
func (c *Clock) Reset() {
	c.frame.Store(0)
}
