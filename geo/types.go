package geo

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Coordinate is a geographic position. Lon/Lat are degrees.
type Coordinate struct {
	Lon          float64 `json:"lon" yaml:"lon" validate:"gte=-180,lte=180"`
	Lat          float64 `json:"lat" yaml:"lat" validate:"gte=-90,lte=90"`
	Elevation    float64 `json:"elevation,omitempty" yaml:"elevation,omitempty"`
	HasElevation bool    `json:"-" yaml:"-"`
}

// At returns a 2D coordinate.
func At(lon, lat float64) Coordinate {
	return Coordinate{Lon: lon, Lat: lat}
}

// AtElevation returns a coordinate with an elevation in meters.
func AtElevation(lon, lat, elevation float64) Coordinate {
	return Coordinate{Lon: lon, Lat: lat, Elevation: elevation, HasElevation: true}
}

// FromSlice accepts a GeoJSON position ([lon, lat] or [lon, lat, elevation]).
func FromSlice(pos []float64) (Coordinate, error) {
	switch len(pos) {
	case 2:
		return At(pos[0], pos[1]), nil
	case 3:
		return AtElevation(pos[0], pos[1], pos[2]), nil
	default:
		return Coordinate{}, fmt.Errorf("position must have 2 or 3 values, got %d", len(pos))
	}
}

// Point drops the elevation.
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Lon, c.Lat}
}

// FromPoint converts an orb point to a coordinate without elevation.
func FromPoint(p orb.Point) Coordinate {
	return Coordinate{Lon: p.Lon(), Lat: p.Lat()}
}

// Slice returns the GeoJSON position of c.
func (c Coordinate) Slice() []float64 {
	if c.HasElevation {
		return []float64{c.Lon, c.Lat, c.Elevation}
	}
	return []float64{c.Lon, c.Lat}
}

// Same2D reports whether a and b share longitude and latitude exactly.
func (c Coordinate) Same2D(o Coordinate) bool {
	return c.Lon == o.Lon && c.Lat == o.Lat
}

func (c Coordinate) String() string {
	if c.HasElevation {
		return fmt.Sprintf("(%f, %f, %gm)", c.Lon, c.Lat, c.Elevation)
	}
	return fmt.Sprintf("(%f, %f)", c.Lon, c.Lat)
}
