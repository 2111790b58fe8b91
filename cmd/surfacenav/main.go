package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	surfacenav "github.com/theoremus-urban-solutions/surface-nav"
	"github.com/theoremus-urban-solutions/surface-nav/config"
	"github.com/theoremus-urban-solutions/surface-nav/flight"
	"github.com/theoremus-urban-solutions/surface-nav/guidance"
	"github.com/theoremus-urban-solutions/surface-nav/internal/logging"
	"github.com/theoremus-urban-solutions/surface-nav/render"
	"github.com/theoremus-urban-solutions/surface-nav/route"
)

type options struct {
	configPath string
	mode       string
	code       string
	taxiway    string
	runway     string
	routePath  string
	frames     int
	step       int
	format     string
	status     string
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "config file (default: config.yml if present)")
	flag.StringVar(&o.mode, "mode", "serve", "serve|oneshot")
	flag.StringVar(&o.code, "code", "", "airplane code to look up in the flight status")
	flag.StringVar(&o.taxiway, "taxiway", "", "taxiway (overrides flight status)")
	flag.StringVar(&o.runway, "runway", "", "runway (overrides flight status)")
	flag.StringVar(&o.routePath, "route", "", "GeoJSON LineString route, URL or path (overrides everything)")
	flag.IntVar(&o.frames, "frames", -1, "last frame to sample in oneshot mode (default: simulator.maxFrame)")
	flag.IntVar(&o.step, "step", 1000, "frames between samples in oneshot mode")
	flag.StringVar(&o.format, "format", "json", "json|msgpack|pb")
	flag.StringVar(&o.status, "status", "", "flight status URL or path (overrides config)")
	flag.Parse()

	if err := run(o); err != nil {
		fmt.Fprintln(os.Stderr, "surfacenav:", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.AppConfig, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.Load()
	if config.IsNotFound(err) {
		def := config.Default()
		return &def, nil
	}
	return cfg, err
}

func run(o options) error {
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}
	if o.status != "" {
		cfg.Flights.StatusURL = o.status
	}

	logOpts := logging.Options{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	}
	if o.mode == "oneshot" {
		// stdout carries the frames
		logOpts.Output = os.Stderr
	}
	logger, logWriter, err := logging.New(logOpts)
	if err != nil {
		return err
	}
	if c, ok := logWriter.(io.Closer); ok && cfg.Logging.File != "" {
		defer func() { _ = c.Close() }()
	}
	slog.SetDefault(logger)

	switch o.mode {
	case "serve":
		return serve(cfg, logger)
	case "oneshot":
		return oneshot(o, cfg, logger)
	default:
		return fmt.Errorf("unknown mode %q", o.mode)
	}
}

func serve(cfg *config.AppConfig, logger *slog.Logger) error {
	app, err := surfacenav.NewApp(cfg, logger, nil)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go app.Run(ctx)
	return surfacenav.NewServer(app).ListenAndServe(ctx)
}

func oneshot(o options, cfg *config.AppConfig, logger *slog.Logger) error {
	ctx := context.Background()
	app, err := surfacenav.NewApp(cfg, logger, nil)
	if err != nil {
		return err
	}
	defer app.Close()

	if app.Poller != nil && o.code != "" {
		if err := app.Poller.Refresh(ctx); err != nil {
			logger.Warn("flight status unavailable", "source", cfg.Flights.StatusURL, "error", err)
		}
	}

	res, err := resolve(ctx, o, app, cfg)
	if err != nil {
		return err
	}
	logger.Info("oneshot", "code", res.Code, "route", res.Route.Name(), "route_m", res.Route.Length())

	out := bufio.NewWriter(os.Stdout)
	defer func() { _ = out.Flush() }()
	backend, err := render.NewBackend(render.Format(o.format), out)
	if err != nil {
		return err
	}

	last := o.frames
	if last < 0 {
		last = cfg.Simulator.MaxFrame
	}
	step := o.step
	if step <= 0 {
		step = 1
	}
	start := time.Now().UTC()
	for frame := 0; frame <= last; frame += step {
		sample := app.Sim.Sample(res.Route, frame)
		f := app.Camera.Frame(sample, res.Plan.Instruct(sample), start.Add(time.Duration(frame)*cfg.Simulator.FrameInterval()))
		f.Code = res.Code
		f.Route = res.Route.Name()
		if err := backend.Render(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

func resolve(ctx context.Context, o options, app *surfacenav.App, cfg *config.AppConfig) (surfacenav.Resolved, error) {
	if o.routePath != "" {
		data, err := flight.NewClient(cfg.Flights.Timeout()).WithoutCachebust().Fetch(ctx, o.routePath)
		if err != nil {
			return surfacenav.Resolved{}, err
		}
		name := strings.TrimSuffix(filepath.Base(o.routePath), filepath.Ext(o.routePath))
		r, err := route.FromGeoJSON(name, data)
		if err != nil {
			return surfacenav.Resolved{}, err
		}
		return surfacenav.Resolved{Code: o.code, Route: r, Plan: guidance.Plan{
			Legs:  []guidance.Leg{{Name: name, EndFraction: 1}},
			Final: "Takeoff",
		}}, nil
	}

	req := surfacenav.RouteRequest{Code: o.code, Taxiway: o.taxiway, Runway: o.runway}
	if req.Code == "" && req.Taxiway == "" && req.Runway == "" {
		e := app.Provider.Select("", "")
		if e == nil {
			return surfacenav.Resolved{}, errors.New("route table has no default route")
		}
		return surfacenav.Resolved{Route: e.Route, Plan: e.Plan}, nil
	}
	return app.Resolve(req)
}
