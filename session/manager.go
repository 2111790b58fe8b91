package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/theoremus-urban-solutions/surface-nav/flight"
	"github.com/theoremus-urban-solutions/surface-nav/guidance"
	"github.com/theoremus-urban-solutions/surface-nav/render"
	"github.com/theoremus-urban-solutions/surface-nav/route"
	"github.com/theoremus-urban-solutions/surface-nav/simulator"
)

// ErrNotFound is returned for unknown session ids.
var ErrNotFound = errors.New("session not found")

// RouteSource picks the route for an airplane code.
type RouteSource interface {
	RouteFor(code string) flight.Selection
}

// Options configures a Manager.
type Options struct {
	Simulator *simulator.Simulator
	Routes    RouteSource
	Camera    render.Camera
	// Interval is the wall-clock time per frame.
	Interval time.Duration
	// Backend, when set, receives every tick of every session.
	Backend render.Backend
	// Retain is how long a session that reached the end of its route stays
	// available before it is dropped. Zero keeps it until Stop or Close.
	Retain time.Duration
	Logger *slog.Logger
}

// Manager owns the running sessions.
type Manager struct {
	opts   Options
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
	closed   bool
}

// NewManager creates a manager. Simulator is required.
func NewManager(opts Options) (*Manager, error) {
	if opts.Simulator == nil {
		return nil, fmt.Errorf("session manager needs a simulator")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Manager{
		opts:     opts,
		logger:   opts.Logger,
		sessions: map[string]*Session{},
	}, nil
}

// Start looks up the route for code and starts a session on it. An unknown
// code still starts a session; it sits at the fallback position.
func (m *Manager) Start(code string) (*Session, error) {
	sel := flight.Selection{Code: code, Route: route.Empty, Plan: guidance.DefaultPlan()}
	if m.opts.Routes != nil {
		sel = m.opts.Routes.RouteFor(code)
	}
	return m.StartRoute(code, sel.Route, sel.Plan)
}

// StartRoute starts a session on an explicit route.
func (m *Manager) StartRoute(code string, r *route.Route, plan guidance.Plan) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, fmt.Errorf("session manager is closed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:        uuid.NewString(),
		Code:      code,
		Route:     r,
		Plan:      plan,
		StartedAt: time.Now().UTC(),
		sim:       m.opts.Simulator,
		camera:    m.opts.Camera,
		clock:     simulator.NewClock(m.opts.Simulator.Config().MaxFrame),
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	m.sessions[s.ID] = s

	logger := m.logger.With("session", s.ID, "code", code)
	d := &simulator.Driver{
		Sim:       s.sim,
		Route:     r,
		Clock:     s.clock,
		Interval:  m.opts.Interval,
		StopAtEnd: true,
		Logger:    logger,
	}
	go m.run(ctx, s, d, logger)

	logger.Info("navigation started", "route", r.Name(), "route_m", r.Length())
	return s, nil
}

func (m *Manager) run(ctx context.Context, s *Session, d *simulator.Driver, logger *slog.Logger) {
	var onTick simulator.TickFunc
	if b := m.opts.Backend; b != nil {
		onTick = func(sample simulator.PositionSample) {
			if err := b.Render(ctx, s.frame(sample, time.Now().UTC())); err != nil && ctx.Err() == nil {
				logger.Warn("render failed", "frame", sample.Frame, "error", err)
			}
		}
	}

	err := d.Run(ctx, onTick)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	close(s.done)

	if !s.clock.Done() {
		return
	}
	logger.Info("navigation complete", "frame", s.clock.Frame())
	if m.opts.Retain <= 0 {
		return
	}
	timer := time.NewTimer(m.opts.Retain)
	defer timer.Stop()
	select {
	case <-timer.C:
		m.evict(s, logger)
	case <-ctx.Done():
	}
}

func (m *Manager) evict(s *Session, logger *slog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[s.ID] == s {
		delete(m.sessions, s.ID)
		logger.Info("finished navigation evicted")
	}
}

// Get returns the session with id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// List returns the sessions ordered by start time.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out
}

// Len is the number of sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Stop ends a session and forgets it.
func (m *Manager) Stop(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.stop()
	m.logger.Info("navigation stopped", "session", id, "frame", s.Frame())
	return nil
}

// Close stops every session and refuses new ones.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	sessions := m.sessions
	m.sessions = map[string]*Session{}
	m.mu.Unlock()

	for _, s := range sessions {
		s.stop()
	}
}
