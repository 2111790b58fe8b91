package simulator

import (
	"context"
	"log/slog"
	"time"

	"github.com/theoremus-urban-solutions/surface-nav/route"
)

// TickFunc receives one sample per animation tick.
type TickFunc func(PositionSample)

// Driver ticks a Clock on a timer and samples the route after each tick.
type Driver struct {
	Sim      *Simulator
	Route    *route.Route
	Clock    *Clock
	Interval time.Duration
	// StopAtEnd ends Run once the clock reaches its maximum frame.
	StopAtEnd bool
	Logger    *slog.Logger
}

// Run blocks until ctx is cancelled or, with StopAtEnd, the route is done.
func (d *Driver) Run(ctx context.Context, onTick TickFunc) error {
	interval := d.Interval
	if interval <= 0 {
		interval = time.Second / 60
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("driver: started",
		"route", d.Route.Name(),
		"route_points", d.Route.Len(),
		"interval", interval,
	)

	for {
		select {
		case <-ctx.Done():
			logger.Debug("driver: stopped", "route", d.Route.Name(), "frame", d.Clock.Frame())
			return ctx.Err()
		case <-ticker.C:
			frame := d.Clock.Tick()
			if onTick != nil {
				onTick(d.Sim.Sample(d.Route, frame))
			}
			if d.StopAtEnd && d.Clock.Done() {
				logger.Debug("driver: route complete", "route", d.Route.Name(), "frame", frame)
				return nil
			}
		}
	}
}
