package route

import (
	"errors"
	"math"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/theoremus-urban-solutions/surface-nav/geo"
)

var validate = validator.New()

// Route is an ordered, immutable path from an origin to a destination.
type Route struct {
	name   string
	coords []geo.Coordinate
	cum    []float64 // meters from coords[0] to coords[i]
}

// Empty is the zero-length route used when no flight data is available.
var Empty = &Route{}

// New validates coords and builds a route. The slice is copied.
func New(name string, coords []geo.Coordinate) (*Route, error) {
	for i, c := range coords {
		if err := validateCoordinate(i, c); err != nil {
			return nil, err
		}
	}
	r := &Route{
		name:   name,
		coords: append([]geo.Coordinate(nil), coords...),
	}
	r.cum = cumulativeMeters(r.coords)
	return r, nil
}

// MustNew is New for static tables and tests.
func MustNew(name string, coords []geo.Coordinate) *Route {
	r, err := New(name, coords)
	if err != nil {
		panic(err)
	}
	return r
}

func validateCoordinate(i int, c geo.Coordinate) error {
	// validator treats NaN as passing no comparison, but be explicit about it
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) {
		return &ValidationError{Index: i, Field: "Lon", Value: c.Lon, Rule: "finite"}
	}
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) {
		return &ValidationError{Index: i, Field: "Lat", Value: c.Lat, Rule: "finite"}
	}
	if c.HasElevation && (math.IsNaN(c.Elevation) || math.IsInf(c.Elevation, 0)) {
		return &ValidationError{Index: i, Field: "Elevation", Value: c.Elevation, Rule: "finite"}
	}
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &ValidationError{Index: i, Field: fe.Field(), Value: fe.Value(), Rule: fe.Tag() + "=" + fe.Param()}
		}
		return err
	}
	return nil
}

func cumulativeMeters(coords []geo.Coordinate) []float64 {
	cum := make([]float64, len(coords))
	for i := 1; i < len(coords); i++ {
		cum[i] = cum[i-1] + geo.Distance(coords[i-1], coords[i])
	}
	return cum
}

// Name identifies the route, e.g. "alpha-9".
func (r *Route) Name() string {
	if r == nil {
		return ""
	}
	return r.name
}

// Len is the number of coordinates.
func (r *Route) Len() int {
	if r == nil {
		return 0
	}
	return len(r.coords)
}

// Degenerate reports whether the route is nil or has fewer than two points.
func (r *Route) Degenerate() bool {
	return r.Len() < 2
}

// At returns the i-th coordinate.
func (r *Route) At(i int) geo.Coordinate {
	return r.coords[i]
}

// First returns the origin. The route must not be empty.
func (r *Route) First() geo.Coordinate {
	return r.coords[0]
}

// Last returns the destination. The route must not be empty.
func (r *Route) Last() geo.Coordinate {
	return r.coords[len(r.coords)-1]
}

// Coordinates returns a copy of the route's coordinates.
func (r *Route) Coordinates() []geo.Coordinate {
	if r == nil {
		return nil
	}
	return append([]geo.Coordinate(nil), r.coords...)
}

// Length is the great-circle length of the route in meters.
func (r *Route) Length() float64 {
	if r.Len() == 0 {
		return 0
	}
	return r.cum[len(r.cum)-1]
}

// DistanceTo returns the distance in meters from the origin to coordinate i.
func (r *Route) DistanceTo(i int) float64 {
	return r.cum[i]
}

// PointAt walks meters along the route from its origin. Negative distances
// give the origin; distances past the end give the destination. The route
// must not be empty.
func (r *Route) PointAt(meters float64) geo.Coordinate {
	n := len(r.coords)
	if n == 1 || meters <= 0 {
		return r.coords[0]
	}
	if meters >= r.cum[n-1] {
		return r.coords[n-1]
	}
	// first vertex strictly beyond meters; segment is (i-1, i)
	i := sort.Search(n, func(k int) bool { return r.cum[k] > meters })
	from := r.coords[i-1]
	return geo.Interpolate(from, r.coords[i], meters-r.cum[i-1])
}
