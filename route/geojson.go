package route

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/theoremus-urban-solutions/surface-nav/geo"
)

// elevationsProperty carries per-vertex elevations, since orb geometries are 2D.
const elevationsProperty = "elevations"

// LineString returns the route geometry without elevation.
func (r *Route) LineString() orb.LineString {
	ls := make(orb.LineString, r.Len())
	for i := range ls {
		ls[i] = r.coords[i].Point()
	}
	return ls
}

// Feature encodes the route as a GeoJSON LineString feature. Elevations, when
// every vertex has one, are written to the "elevations" property.
func (r *Route) Feature() *geojson.Feature {
	f := geojson.NewFeature(r.LineString())
	f.Properties["name"] = r.Name()
	f.Properties["length_m"] = r.Length()
	if elev, ok := r.elevations(); ok {
		f.Properties[elevationsProperty] = elev
	}
	return f
}

func (r *Route) elevations() ([]float64, bool) {
	if r.Len() == 0 {
		return nil, false
	}
	out := make([]float64, r.Len())
	for i, c := range r.coords {
		if !c.HasElevation {
			return nil, false
		}
		out[i] = c.Elevation
	}
	return out, true
}

// FromGeoJSON accepts a LineString Feature or a bare LineString geometry.
func FromGeoJSON(name string, data []byte) (*Route, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}

	var (
		geom  orb.Geometry
		props geojson.Properties
	)
	switch head.Type {
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("decode feature: %w", err)
		}
		geom, props = f.Geometry, f.Properties
	case "LineString":
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("decode geometry: %w", err)
		}
		geom = g.Geometry()
	default:
		return nil, fmt.Errorf("unsupported geojson type %q", head.Type)
	}

	ls, ok := geom.(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("route geometry must be a LineString, got %T", geom)
	}
	if name == "" {
		name = props.MustString("name", "")
	}

	coords := make([]geo.Coordinate, len(ls))
	for i, p := range ls {
		coords[i] = geo.FromPoint(p)
	}
	if raw, ok := props[elevationsProperty].([]any); ok && len(raw) == len(coords) {
		for i, v := range raw {
			if z, ok := v.(float64); ok {
				coords[i].Elevation = z
				coords[i].HasElevation = true
			}
		}
	}
	return New(name, coords)
}
