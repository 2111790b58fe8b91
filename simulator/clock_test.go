package simulator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock(t *testing.T) {
	c := NewClock(3)
	assert.Equal(t, 0, c.Frame())
	assert.False(t, c.Done())
	assert.Equal(t, 3, c.Max())

	assert.Equal(t, 1, c.Tick())
	assert.Equal(t, 2, c.Tick())
	assert.Equal(t, 3, c.Tick())
	assert.True(t, c.Done())

	// the counter keeps going; sampling clamps
	assert.Equal(t, 4, c.Tick())
	assert.True(t, c.Done())

	c.Reset()
	assert.Equal(t, 0, c.Frame())
	assert.False(t, c.Done())
}

func TestClock_ConcurrentReaders(t *testing.T) {
	c := NewClock(1000)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			c.Tick()
		}
	}()
	go func() {
		defer wg.Done()
		last := 0
		for i := 0; i < 1000; i++ {
			f := c.Frame()
			assert.GreaterOrEqual(t, f, last)
			last = f
		}
	}()
	wg.Wait()
	assert.Equal(t, 1000, c.Frame())
}

func TestDriver_StopsAtEnd(t *testing.T) {
	s, err := New(Config{MaxFrame: 5, LookaheadFrames: 1, Fallback: DefaultFallback})
	require.NoError(t, err)

	d := &Driver{
		Sim:       s,
		Route:     dueEast(),
		Clock:     NewClock(5),
		Interval:  time.Millisecond,
		StopAtEnd: true,
	}

	var frames []int
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = d.Run(ctx, func(sample PositionSample) {
		frames = append(frames, sample.Frame)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, frames)
	assert.True(t, d.Clock.Done())
}

func TestDriver_Cancel(t *testing.T) {
	d := &Driver{
		Sim:      newSim(t),
		Route:    alpha9(),
		Clock:    NewClock(DefaultMaxFrame),
		Interval: time.Millisecond,
	}

	ctx, cancel := context.WithCancel(context.Background())
	ticks := 0
	err := d.Run(ctx, func(PositionSample) {
		ticks++
		if ticks == 3 {
			cancel()
		}
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, ticks, 3)
}
