package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialBearing_Cardinal(t *testing.T) {
	origin := At(-66.10, 18.46)
	tests := []struct {
		name     string
		to       Coordinate
		expected float64
	}{
		{name: "east", to: At(-66.00, 18.46), expected: 90},
		{name: "west", to: At(-66.20, 18.46), expected: 270},
		{name: "north", to: At(-66.10, 18.56), expected: 0},
		{name: "south", to: At(-66.10, 18.36), expected: 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InitialBearing(origin, tt.to)
			diff := math.Abs(got - tt.expected)
			if diff > 180 {
				diff = 360 - diff
			}
			assert.Less(t, diff, 0.1, "bearing %f", got)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 360.0)
		})
	}
}

func TestInitialBearing_Coincident(t *testing.T) {
	p := AtElevation(-66.1, 18.45, -40)
	assert.Equal(t, 0.0, InitialBearing(p, At(-66.1, 18.45)))
}

func TestNormalizeBearing(t *testing.T) {
	tests := []struct {
		in, out float64
	}{
		{0, 0},
		{360, 0},
		{-90, 270},
		{720.5, 0.5},
		{-1e-15, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		got := NormalizeBearing(tt.in)
		assert.InDelta(t, tt.out, got, 1e-9, "NormalizeBearing(%v)", tt.in)
		assert.Less(t, got, 360.0)
	}
}

func TestDistance(t *testing.T) {
	a := At(-66.10, 18.46)
	b := At(-66.00, 18.46)

	d := Distance(a, b)
	// 0.1 deg of longitude at 18.46N is ~10.56 km
	assert.InDelta(t, 10560, d, 60)
	assert.Equal(t, 0.0, Distance(a, a))
	assert.InDelta(t, d, Distance(b, a), 1e-6)

	// haversine on a slightly smaller sphere agrees within half a percent
	km := HaversineKM(a.Lat, a.Lon, b.Lat, b.Lon)
	assert.InDelta(t, Kilometers(d), km, Kilometers(d)*0.005)
}

func TestInterpolate(t *testing.T) {
	a := AtElevation(-66.10, 18.46, 0)
	b := AtElevation(-66.00, 18.46, 100)
	total := Distance(a, b)

	assert.Equal(t, a, Interpolate(a, b, 0))
	assert.Equal(t, a, Interpolate(a, b, -5))
	assert.Equal(t, b, Interpolate(a, b, total))
	assert.Equal(t, b, Interpolate(a, b, total*2))

	mid := Interpolate(a, b, total/2)
	assert.InDelta(t, total/2, Distance(a, mid), 0.5)
	assert.InDelta(t, total/2, Distance(mid, b), 0.5)
	assert.True(t, mid.HasElevation)
	assert.InDelta(t, 50, mid.Elevation, 1e-6)

	flat := Interpolate(At(-66.10, 18.46), b, total/2)
	assert.False(t, flat.HasElevation)
}

func TestFromSlice(t *testing.T) {
	c, err := FromSlice([]float64{-66.0952106, 18.4578262, -40})
	assert.NoError(t, err)
	assert.True(t, c.HasElevation)
	assert.Equal(t, []float64{-66.0952106, 18.4578262, -40}, c.Slice())

	c, err = FromSlice([]float64{1, 2})
	assert.NoError(t, err)
	assert.False(t, c.HasElevation)

	_, err = FromSlice([]float64{1})
	assert.Error(t, err)
}

func TestMiles(t *testing.T) {
	assert.InDelta(t, 1.0, Miles(MetersPerMile), 1e-12)
	assert.InDelta(t, 0.621371, MilesPerKilometer, 1e-6)
}
