package flight

import (
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/theoremus-urban-solutions/surface-nav/guidance"
	"github.com/theoremus-urban-solutions/surface-nav/route"
)

const defaultCacheSize = 64

// StatusSource returns the latest status for an airplane code, or nil.
type StatusSource interface {
	Latest(code string) *Status
}

// Selection is the route chosen for a flight.
type Selection struct {
	Code   string
	Status *Status
	Entry  *Entry
	Route  *route.Route
	Plan   guidance.Plan
}

// Provider resolves airplane codes to taxi routes.
type Provider struct {
	table  *Table
	source StatusSource
	logger *slog.Logger
	cache  *lru.Cache[string, *Entry]
}

// NewProvider creates a provider with the default selection cache size.
func NewProvider(table *Table, source StatusSource, logger *slog.Logger) *Provider {
	p, _ := NewProviderSize(table, source, defaultCacheSize, logger)
	return p
}

// NewProviderSize creates a provider whose selection cache holds size entries.
func NewProviderSize(table *Table, source StatusSource, size int, logger *slog.Logger) (*Provider, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, *Entry](size)
	if err != nil {
		return nil, err
	}
	return &Provider{table: table, source: source, logger: logger, cache: cache}, nil
}

// Table returns the route table.
func (p *Provider) Table() *Table {
	return p.table
}

// Select resolves a taxiway/runway pair through the cache.
func (p *Provider) Select(taxiway, runway string) *Entry {
	key := selectionKey(taxiway, runway)
	if e, ok := p.cache.Get(key); ok {
		return e
	}
	e := p.table.Select(taxiway, runway)
	if e != nil {
		p.cache.Add(key, e)
	}
	return e
}

// RouteFor picks the route for code. Without a status for code the
// selection carries route.Empty, which the simulator draws at its fallback.
func (p *Provider) RouteFor(code string) Selection {
	sel := Selection{Code: code, Route: route.Empty, Plan: guidance.DefaultPlan()}
	if p.source == nil {
		return sel
	}
	st := p.source.Latest(code)
	if !st.Matches(code) {
		p.logger.Debug("no flight status", "code", code)
		return sel
	}
	sel.Status = st

	e := p.Select(st.Taxiway, st.Runway)
	if e == nil {
		p.logger.Warn("no route for flight", "code", code, "taxiway", st.Taxiway, "runway", st.Runway)
		return sel
	}
	sel.Entry = e
	sel.Route = e.Route
	sel.Plan = e.Plan
	p.logger.Debug("route selected", "code", code, "route", e.Name)
	return sel
}
