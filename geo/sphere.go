package geo

import (
	"math"

	orbgeo "github.com/paulmach/orb/geo"
)

// Distance returns the great-circle distance in meters, ignoring elevation.
func Distance(a, b Coordinate) float64 {
	if a.Same2D(b) {
		return 0
	}
	return orbgeo.DistanceHaversine(a.Point(), b.Point())
}

// InitialBearing returns the great-circle bearing from a to b in degrees,
// clockwise from true north, in [0, 360). Coincident points give 0.
func InitialBearing(a, b Coordinate) float64 {
	if a.Same2D(b) {
		return 0
	}
	return NormalizeBearing(orbgeo.Bearing(a.Point(), b.Point()))
}

// NormalizeBearing maps any angle in degrees into [0, 360).
func NormalizeBearing(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -1e-15 + 360 rounds to 360
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// Destination returns the point reached by travelling meters from c along
// the great circle with the given initial bearing.
func Destination(c Coordinate, bearing, meters float64) Coordinate {
	return FromPoint(orbgeo.PointAtBearingAndDistance(c.Point(), bearing, meters))
}

// Interpolate walks meters from a toward b along the great circle. Elevation
// is interpolated linearly when both endpoints carry one.
func Interpolate(a, b Coordinate, meters float64) Coordinate {
	segment := Distance(a, b)
	if segment == 0 || meters <= 0 {
		return a
	}
	if meters >= segment {
		return b
	}
	out := Destination(a, InitialBearing(a, b), meters)
	if a.HasElevation && b.HasElevation {
		t := meters / segment
		out.Elevation = a.Elevation + t*(b.Elevation-a.Elevation)
		out.HasElevation = true
	}
	return out
}

// HaversineKM is the closed-form haversine on a 6371 km sphere. It is used
// where a quick metric is needed that is independent of orb's earth radius,
// such as nearest-node snapping.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}
