package surfacenav

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP front of an App.
type Server struct {
	app    *App
	logger *slog.Logger
	http   *http.Server
}

// NewServer creates a server listening on the configured port.
func NewServer(app *App) *Server {
	s := &Server{app: app, logger: app.Logger.With("component", "http")}
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.Config.Server.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Router returns the API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/flight", s.handleFlight)
		r.Get("/route", s.handleRoute)
		r.Route("/navigation", func(r chi.Router) {
			r.Get("/", s.handleListNavigation)
			r.Post("/", s.handleStartNavigation)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/pose", s.handlePose)
				r.Get("/feed.pb", s.handleFeed)
				r.Delete("/", s.handleStopNavigation)
			})
		})
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		errc <- s.http.ListenAndServe()
	}()
	s.logger.Info("server listening", "addr", s.http.Addr)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("server shut down successfully")
	return nil
}
