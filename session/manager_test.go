package session

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/surface-nav/flight"
	"github.com/theoremus-urban-solutions/surface-nav/geo"
	"github.com/theoremus-urban-solutions/surface-nav/guidance"
	"github.com/theoremus-urban-solutions/surface-nav/render"
	"github.com/theoremus-urban-solutions/surface-nav/route"
	"github.com/theoremus-urban-solutions/surface-nav/simulator"
)

type fixedRoutes map[string]*route.Route

func (f fixedRoutes) RouteFor(code string) flight.Selection {
	r, ok := f[code]
	if !ok {
		r = route.Empty
	}
	return flight.Selection{Code: code, Route: r, Plan: guidance.DefaultPlan()}
}

func newManager(t *testing.T, maxFrame int, backend render.Backend) *Manager {
	t.Helper()
	sim, err := simulator.New(simulator.Config{MaxFrame: maxFrame, LookaheadFrames: 1, Fallback: simulator.DefaultFallback})
	require.NoError(t, err)
	m, err := NewManager(Options{
		Simulator: sim,
		Routes: fixedRoutes{
			"N1": route.MustNew("east", []geo.Coordinate{geo.At(-66.10, 18.46), geo.At(-66.00, 18.46)}),
		},
		Camera:   render.DefaultCamera(),
		Interval: time.Millisecond,
		Backend:  backend,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func TestNewManager_RequiresSimulator(t *testing.T) {
	_, err := NewManager(Options{})
	assert.Error(t, err)
}

func TestManager_RunsToEnd(t *testing.T) {
	var out render.Collector
	m := newManager(t, 20, &out)

	s, err := m.Start("N1")
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "east", s.Route.Name())

	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("session did not finish")
	}
	assert.True(t, s.Finished())
	assert.NoError(t, s.Err())

	frames := out.Frames()
	require.Len(t, frames, 20)
	assert.Equal(t, 1, frames[0].Sample.Frame)
	last := frames[len(frames)-1]
	assert.Equal(t, s.ID, last.SessionID)
	assert.Equal(t, "N1", last.Code)
	assert.InDelta(t, -66.00, last.Sample.Position.Lon, 1e-9)
	assert.Equal(t, "Runway 9", last.Guidance.Current)

	cur := s.Current()
	assert.Equal(t, 20, cur.Sample.Frame)
	assert.InDelta(t, 90, s.Render(0, time.Now()).View.Bearing, 0.1)
}

func TestManager_EvictsFinishedSessions(t *testing.T) {
	sim, err := simulator.New(simulator.Config{MaxFrame: 3, LookaheadFrames: 1, Fallback: simulator.DefaultFallback})
	require.NoError(t, err)
	m, err := NewManager(Options{
		Simulator: sim,
		Interval:  time.Millisecond,
		Retain:    20 * time.Millisecond,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	t.Cleanup(m.Close)

	s, err := m.Start("N1")
	require.NoError(t, err)
	<-s.Done()
	assert.True(t, s.Finished())

	require.Eventually(t, func() bool { return m.Len() == 0 }, 5*time.Second, 5*time.Millisecond)
	_, err = m.Get(s.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestManager_UnknownCodeUsesFallback(t *testing.T) {
	m := newManager(t, 10, nil)
	s, err := m.Start("N404")
	require.NoError(t, err)

	f := s.Render(5, time.Now())
	assert.True(t, f.Sample.Fallback)
	assert.Equal(t, simulator.DefaultFallback, f.Sample.Position)
	assert.Zero(t, f.Sample.Bearing)
	assert.Equal(t, guidance.Instruction{}, f.Guidance)
}

func TestManager_GetStopClose(t *testing.T) {
	m := newManager(t, 1_000_000, nil)

	a, err := m.Start("N1")
	require.NoError(t, err)
	b, err := m.Start("N1")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, m.Len())
	assert.Len(t, m.List(), 2)

	got, err := m.Get(a.ID)
	require.NoError(t, err)
	assert.Same(t, a, got)

	require.NoError(t, m.Stop(a.ID))
	<-a.Done()
	assert.NoError(t, a.Err())
	_, err = m.Get(a.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(m.Stop(a.ID), ErrNotFound))

	m.Close()
	<-b.Done()
	assert.Zero(t, m.Len())
	_, err = m.Start("N1")
	assert.Error(t, err)
}
