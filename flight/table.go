package flight

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/theoremus-urban-solutions/surface-nav/geo"
	"github.com/theoremus-urban-solutions/surface-nav/guidance"
	"github.com/theoremus-urban-solutions/surface-nav/route"
)

//go:embed routes.yml
var defaultRoutesYAML []byte

type legDoc struct {
	Name      string            `yaml:"name" validate:"required"`
	EndVertex int               `yaml:"endVertex" validate:"gte=1"`
	Turn      guidance.Maneuver `yaml:"turn"`
}

type routeDoc struct {
	Name        string      `yaml:"name" validate:"required"`
	Taxiway     string      `yaml:"taxiway" validate:"required"`
	Runway      string      `yaml:"runway" validate:"required"`
	Final       string      `yaml:"final"`
	Legs        []legDoc    `yaml:"legs" validate:"dive"`
	Coordinates [][]float64 `yaml:"coordinates"`
}

type tableDoc struct {
	DefaultTaxiway string     `yaml:"defaultTaxiway" validate:"required"`
	DefaultRunway  string     `yaml:"defaultRunway" validate:"required"`
	Routes         []routeDoc `yaml:"routes" validate:"required,min=1,dive"`
}

// Entry is one selectable taxi route.
type Entry struct {
	Name    string
	Taxiway string
	Runway  string
	Route   *route.Route
	Plan    guidance.Plan
}

// Table maps (taxiway, runway) selections onto routes.
type Table struct {
	defaultTaxiway string
	defaultRunway  string
	entries        map[string]*Entry // selection key -> entry
	byName         map[string]*Entry
	names          []string
}

// DefaultTable returns the embedded SJU route table.
func DefaultTable() (*Table, error) {
	return LoadTable(defaultRoutesYAML)
}

// LoadTableFile reads a route table from a YAML file.
func LoadTableFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadTable(data)
}

// LoadTable parses and validates a YAML route table.
func LoadTable(data []byte) (*Table, error) {
	var doc tableDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode route table: %w", err)
	}
	if err := validator.New().Struct(doc); err != nil {
		return nil, fmt.Errorf("route table: %w", err)
	}

	t := &Table{
		defaultTaxiway: strings.ToLower(doc.DefaultTaxiway),
		defaultRunway:  normalizeRunway(doc.DefaultRunway),
		entries:        map[string]*Entry{},
		byName:         map[string]*Entry{},
	}
	for _, rs := range doc.Routes {
		e, err := buildEntry(rs)
		if err != nil {
			return nil, fmt.Errorf("route %s: %w", rs.Name, err)
		}
		key := selectionKey(e.Taxiway, e.Runway)
		if _, dup := t.entries[key]; dup {
			return nil, fmt.Errorf("route %s: duplicate selection %s", rs.Name, key)
		}
		t.entries[key] = e
		t.byName[e.Name] = e
		t.names = append(t.names, e.Name)
	}
	return t, nil
}

func buildEntry(rs routeDoc) (*Entry, error) {
	coords := make([]geo.Coordinate, len(rs.Coordinates))
	for i, pos := range rs.Coordinates {
		c, err := geo.FromSlice(pos)
		if err != nil {
			return nil, fmt.Errorf("coordinate %d: %w", i, err)
		}
		coords[i] = c
	}
	r, err := route.New(rs.Name, coords)
	if err != nil {
		return nil, err
	}

	plan := guidance.DefaultPlan()
	if len(rs.Legs) > 0 && r.Length() > 0 {
		plan = guidance.Plan{Final: rs.Final}
		for _, l := range rs.Legs {
			if l.EndVertex >= r.Len() {
				return nil, fmt.Errorf("leg %s ends at vertex %d, route has %d", l.Name, l.EndVertex, r.Len())
			}
			plan.Legs = append(plan.Legs, guidance.Leg{
				Name:        l.Name,
				EndFraction: r.DistanceTo(l.EndVertex) / r.Length(),
				Turn:        l.Turn,
			})
		}
		if err := plan.Check(); err != nil {
			return nil, err
		}
	}

	return &Entry{
		Name:    rs.Name,
		Taxiway: strings.ToLower(rs.Taxiway),
		Runway:  normalizeRunway(rs.Runway),
		Route:   r,
		Plan:    plan,
	}, nil
}

func normalizeRunway(s string) string {
	s = strings.TrimSpace(strings.ToUpper(s))
	s = strings.TrimLeft(s, "0")
	return s
}

func selectionKey(taxiway, runway string) string {
	return strings.ToLower(strings.TrimSpace(taxiway)) + "/" + normalizeRunway(runway)
}

// Names lists route names in table order.
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

// Get looks a route up by name.
func (t *Table) Get(name string) (*Entry, bool) {
	e, ok := t.byName[name]
	return e, ok
}

// Select resolves a taxiway/runway pair. An unknown runway falls back to the
// taxiway's route for the default runway; an unknown taxiway falls back to
// the default taxiway.
func (t *Table) Select(taxiway, runway string) *Entry {
	taxiway = strings.ToLower(strings.TrimSpace(taxiway))
	if e, ok := t.entries[selectionKey(taxiway, runway)]; ok {
		return e
	}
	if e, ok := t.entries[selectionKey(taxiway, t.defaultRunway)]; ok {
		return e
	}
	if e, ok := t.entries[selectionKey(t.defaultTaxiway, runway)]; ok {
		return e
	}
	return t.entries[selectionKey(t.defaultTaxiway, t.defaultRunway)]
}
