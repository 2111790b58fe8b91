package flight

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Poller keeps the most recent status per airplane code.
type Poller struct {
	client   *Client
	source   string
	interval time.Duration
	logger   *slog.Logger

	mu        sync.RWMutex
	latest    map[string]*Status // lower-cased code -> status
	lastFetch time.Time
	lastErr   error
}

// NewPoller polls source every interval.
func NewPoller(client *Client, source string, interval time.Duration, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Poller{
		client:   client,
		source:   source,
		interval: interval,
		logger:   logger,
		latest:   map[string]*Status{},
	}
}

// Refresh fetches the source once.
func (p *Poller) Refresh(ctx context.Context) error {
	s, err := p.client.FetchStatus(ctx, p.source)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastErr = err
	if err != nil {
		return err
	}
	p.latest[strings.ToLower(s.Code)] = s
	p.lastFetch = s.FetchedAt
	return nil
}

// Run refreshes until ctx is done. Fetch failures are logged and retried on
// the next tick.
func (p *Poller) Run(ctx context.Context) {
	if err := p.Refresh(ctx); err != nil {
		p.logger.Warn("flight status refresh failed", "source", p.source, "error", err)
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Refresh(ctx); err != nil && ctx.Err() == nil {
				p.logger.Warn("flight status refresh failed", "source", p.source, "error", err)
			}
		}
	}
}

// Latest returns the last status seen for code, or nil.
func (p *Poller) Latest(code string) *Status {
	if code == "" {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest[strings.ToLower(code)]
}

// LastFetch is the time of the last successful refresh.
func (p *Poller) LastFetch() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastFetch
}

// LastError is the result of the most recent refresh.
func (p *Poller) LastError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}
