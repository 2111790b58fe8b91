package session

import (
	"context"
	"sync"
	"time"

	"github.com/theoremus-urban-solutions/surface-nav/guidance"
	"github.com/theoremus-urban-solutions/surface-nav/render"
	"github.com/theoremus-urban-solutions/surface-nav/route"
	"github.com/theoremus-urban-solutions/surface-nav/simulator"
)

// Session is one aircraft moving along one route.
type Session struct {
	ID        string
	Code      string
	Route     *route.Route
	Plan      guidance.Plan
	StartedAt time.Time

	sim    *simulator.Simulator
	camera render.Camera
	clock  *simulator.Clock

	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// Frame returns the session's current frame number.
func (s *Session) Frame() int {
	return s.clock.Frame()
}

// Done is closed when the driver goroutine exits.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Finished reports whether the aircraft reached the end of the route.
func (s *Session) Finished() bool {
	return s.clock.Done()
}

// Err is the error the driver stopped with, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Render builds the frame for an explicit frame number.
func (s *Session) Render(frame int, at time.Time) render.Frame {
	return s.frame(s.sim.Sample(s.Route, frame), at)
}

func (s *Session) frame(sample simulator.PositionSample, at time.Time) render.Frame {
	f := s.camera.Frame(sample, s.Plan.Instruct(sample), at)
	f.SessionID = s.ID
	f.Code = s.Code
	f.Route = s.Route.Name()
	return f
}

// Current builds the frame for the current clock position.
func (s *Session) Current() render.Frame {
	return s.Render(s.clock.Frame(), time.Now().UTC())
}

func (s *Session) stop() {
	s.cancel()
	<-s.done
}
