/*
Package geo provides the spherical geometry used to move an aircraft along a
taxi route.

Coordinates are longitude/latitude in degrees (GeoJSON order) with an
optional elevation in meters. Elevation never participates in distance or
bearing math; it is carried so that a renderer can re-attach it.

Distances are great-circle (haversine) distances in meters, computed with
github.com/paulmach/orb/geo so that the same earth radius is used for
measuring a segment and for walking along it.

# Basic Usage

	from := geo.Coordinate{Lon: -66.10, Lat: 18.46}
	to := geo.Coordinate{Lon: -66.00, Lat: 18.46}

	meters := geo.Distance(from, to)
	heading := geo.InitialBearing(from, to) // ~90, clockwise from true north
	mid := geo.Interpolate(from, to, meters/2)
*/
package geo
