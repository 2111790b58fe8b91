package flight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/surface-nav/route"
)

type staticSource map[string]*Status

func (s staticSource) Latest(code string) *Status {
	return s[strings.ToLower(code)]
}

func TestProvider_RouteFor(t *testing.T) {
	src := staticSource{
		"n1": {Code: "N1", Taxiway: "bravo", Runway: "27"},
		"n2": {Code: "N2", Taxiway: "alpha", Runway: "4"},
	}
	p := NewProvider(defaultTable(t), src, nil)

	sel := p.RouteFor("N1")
	require.NotNil(t, sel.Entry)
	assert.Equal(t, "bravo-27", sel.Route.Name())
	assert.Equal(t, "Taxiway B", sel.Plan.Legs[0].Name)
	assert.Same(t, src["n1"], sel.Status)

	sel = p.RouteFor("n2")
	assert.Equal(t, "alpha-9", sel.Route.Name())
}

func TestProvider_NoStatusGivesEmptyRoute(t *testing.T) {
	p := NewProvider(defaultTable(t), staticSource{}, nil)

	for _, code := range []string{"", "N404"} {
		sel := p.RouteFor(code)
		assert.Same(t, route.Empty, sel.Route)
		assert.True(t, sel.Route.Degenerate())
		assert.Nil(t, sel.Status)
		assert.Nil(t, sel.Entry)
	}

	// a source that hands back another aircraft's status is not trusted
	wrong := NewProvider(defaultTable(t), staticSource{"n1": {Code: "N2", Taxiway: "bravo", Runway: "27"}}, nil)
	sel := wrong.RouteFor("N1")
	assert.Same(t, route.Empty, sel.Route)
	assert.Nil(t, sel.Status)

	nilSource := NewProvider(defaultTable(t), nil, nil)
	assert.Same(t, route.Empty, nilSource.RouteFor("N1").Route)
}

func TestProvider_SelectCaches(t *testing.T) {
	p, err := NewProviderSize(defaultTable(t), nil, 1, nil)
	require.NoError(t, err)

	first := p.Select("bravo", "27")
	assert.Same(t, first, p.Select("BRAVO", "27"))
	assert.Equal(t, 1, p.cache.Len())

	p.Select("alpha", "9")
	assert.Equal(t, 1, p.cache.Len())
	assert.True(t, p.cache.Contains(selectionKey("alpha", "9")))
}
