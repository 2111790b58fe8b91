// Package surfacenav serves simulated aircraft taxi navigation over HTTP.
package surfacenav

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/theoremus-urban-solutions/surface-nav/config"
	"github.com/theoremus-urban-solutions/surface-nav/flight"
	"github.com/theoremus-urban-solutions/surface-nav/geo"
	"github.com/theoremus-urban-solutions/surface-nav/render"
	"github.com/theoremus-urban-solutions/surface-nav/session"
	"github.com/theoremus-urban-solutions/surface-nav/simulator"
	"github.com/theoremus-urban-solutions/surface-nav/taxiway"
)

// App wires the simulator to its route sources and sessions.
type App struct {
	Config   *config.AppConfig
	Logger   *slog.Logger
	Sim      *simulator.Simulator
	Camera   render.Camera
	Poller   *flight.Poller // nil without a status URL
	Provider *flight.Provider
	Network  *taxiway.Network // nil without a network file
	Sessions *session.Manager
}

// SimulatorConfig converts the config section to simulator constants.
func SimulatorConfig(c config.SimulatorConfig) simulator.Config {
	return simulator.Config{
		MaxFrame:        c.MaxFrame,
		LookaheadFrames: c.LookaheadFrames,
		Fallback:        geo.At(c.Fallback.Lon, c.Fallback.Lat),
	}
}

// NewApp builds the application from cfg. backend, when non-nil, receives
// every tick of every session.
func NewApp(cfg *config.AppConfig, logger *slog.Logger, backend render.Backend) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sim, err := simulator.New(SimulatorConfig(cfg.Simulator))
	if err != nil {
		return nil, fmt.Errorf("simulator: %w", err)
	}

	table, err := flight.DefaultTable()
	if cfg.Routes.TablePath != "" {
		table, err = flight.LoadTableFile(cfg.Routes.TablePath)
	}
	if err != nil {
		return nil, fmt.Errorf("route table: %w", err)
	}

	app := &App{
		Config: cfg,
		Logger: logger,
		Sim:    sim,
		Camera: render.Camera{
			Zoom:          cfg.Camera.Zoom,
			Pitch:         cfg.Camera.Pitch,
			ModelAltitude: cfg.Camera.ModelAltitude,
		},
	}

	var source flight.StatusSource
	if cfg.Flights.StatusURL != "" {
		app.Poller = flight.NewPoller(
			flight.NewClient(cfg.Flights.Timeout()),
			cfg.Flights.StatusURL,
			cfg.Flights.PollInterval(),
			logger.With("component", "flight-poller"),
		)
		source = app.Poller
	}
	app.Provider, err = flight.NewProviderSize(table, source, cfg.Routes.CacheSize, logger.With("component", "route-provider"))
	if err != nil {
		return nil, err
	}

	if cfg.Routes.TaxiwayNetworkPath != "" {
		app.Network, err = taxiway.LoadNetworkFile(cfg.Routes.TaxiwayNetworkPath)
		if err != nil {
			return nil, fmt.Errorf("taxiway network: %w", err)
		}
		logger.Info("taxiway network loaded",
			"path", cfg.Routes.TaxiwayNetworkPath,
			"nodes", app.Network.Nodes(),
			"edges", app.Network.Edges())
	}

	app.Sessions, err = session.NewManager(session.Options{
		Simulator: sim,
		Routes:    app.Provider,
		Camera:    app.Camera,
		Interval:  cfg.Simulator.FrameInterval(),
		Backend:   backend,
		Retain:    cfg.Server.SessionRetain(),
		Logger:    logger.With("component", "sessions"),
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Run polls flight status until ctx is done.
func (a *App) Run(ctx context.Context) {
	if a.Poller != nil {
		a.Poller.Run(ctx)
	}
}

// Close stops all sessions.
func (a *App) Close() {
	a.Sessions.Close()
}
