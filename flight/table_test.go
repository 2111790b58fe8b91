package flight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/surface-nav/guidance"
)

func defaultTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := DefaultTable()
	require.NoError(t, err)
	return tbl
}

func TestDefaultTable(t *testing.T) {
	tbl := defaultTable(t)
	assert.Equal(t, []string{"alpha-9", "alpha-27", "bravo-9", "bravo-27"}, tbl.Names())

	e, ok := tbl.Get("alpha-9")
	require.True(t, ok)
	assert.Equal(t, 7, e.Route.Len())
	assert.True(t, e.Route.First().HasElevation)
	require.Len(t, e.Plan.Legs, 2)
	assert.Equal(t, "Taxiway A", e.Plan.Legs[0].Name)
	assert.Equal(t, guidance.ManeuverTurnLeft, e.Plan.Legs[0].Turn)
	assert.InDelta(t, 0.26, e.Plan.Legs[0].EndFraction, 0.01)
	assert.Equal(t, 1.0, e.Plan.Legs[1].EndFraction)
	assert.Equal(t, "Takeoff", e.Plan.Final)

	_, ok = tbl.Get("charlie-9")
	assert.False(t, ok)
}

func TestTable_Select(t *testing.T) {
	tbl := defaultTable(t)
	tests := []struct {
		taxiway, runway string
		want            string
	}{
		{"bravo", "27", "bravo-27"},
		{"BRAVO", "27", "bravo-27"},
		{"bravo", "9", "bravo-9"},
		{"bravo", "09", "bravo-9"},
		{"bravo", "", "bravo-9"},
		{"bravo", "8", "bravo-9"},
		{"alpha", "27", "alpha-27"},
		{"charlie", "27", "alpha-27"},
		{"", "27", "alpha-27"},
		{"alpha", "9", "alpha-9"},
		{"charlie", "4", "alpha-9"},
		{"", "", "alpha-9"},
	}
	for _, tt := range tests {
		t.Run(tt.taxiway+"/"+tt.runway, func(t *testing.T) {
			e := tbl.Select(tt.taxiway, tt.runway)
			require.NotNil(t, e)
			assert.Equal(t, tt.want, e.Name)
		})
	}
}

func TestLoadTable_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not yaml", doc: "routes: [1"},
		{name: "no routes", doc: "defaultTaxiway: a\ndefaultRunway: \"9\"\n"},
		{name: "bad coordinate", doc: `
defaultTaxiway: a
defaultRunway: "9"
routes:
  - name: a-9
    taxiway: a
    runway: "9"
    coordinates: [[0, 95], [1, 1]]
`},
		{name: "leg past last vertex", doc: `
defaultTaxiway: a
defaultRunway: "9"
routes:
  - name: a-9
    taxiway: a
    runway: "9"
    legs:
      - { name: A, endVertex: 2 }
    coordinates: [[0, 0], [1, 0]]
`},
		{name: "last leg short of the end", doc: `
defaultTaxiway: a
defaultRunway: "9"
routes:
  - name: a-9
    taxiway: a
    runway: "9"
    legs:
      - { name: A, endVertex: 1 }
    coordinates: [[0, 0], [1, 0], [2, 0]]
`},
		{name: "duplicate selection", doc: `
defaultTaxiway: a
defaultRunway: "9"
routes:
  - { name: one, taxiway: a, runway: "9", coordinates: [[0, 0], [1, 0]] }
  - { name: two, taxiway: A, runway: "09", coordinates: [[0, 0], [1, 0]] }
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTable([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadTable_DefaultPlanWithoutLegs(t *testing.T) {
	tbl, err := LoadTable([]byte(`
defaultTaxiway: a
defaultRunway: "9"
routes:
  - { name: a-9, taxiway: a, runway: "9", coordinates: [[0, 0], [1, 0]] }
`))
	require.NoError(t, err)
	e := tbl.Select("a", "9")
	require.NotNil(t, e)
	assert.Equal(t, guidance.DefaultPlan(), e.Plan)
}
