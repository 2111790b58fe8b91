package surfacenav

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/surface-nav/geo"
)

// QueryError is a request the caller got wrong. Handlers answer it with 400.
type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

func parseNonNegativeInt(s string) (int, error) {
	if s == "" {
		return -1, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return -1, &QueryError{Msg: "Numeric parameter must be a non-negative integer."}
	}
	return v, nil
}

// parseCoordinate reads "lon,lat".
func parseCoordinate(name, s string) (*geo.Coordinate, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, &QueryError{Msg: name + " must be lon,lat."}
	}
	lon, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lat, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil || lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return nil, &QueryError{Msg: name + " must be lon,lat in degrees."}
	}
	c := geo.At(lon, lat)
	return &c, nil
}

func parseRouteRequest(q url.Values) (RouteRequest, error) {
	req := RouteRequest{
		Code:    strings.TrimSpace(q.Get("code")),
		Taxiway: strings.TrimSpace(q.Get("taxiway")),
		Runway:  strings.TrimSpace(q.Get("runway")),
	}
	var err error
	if req.From, err = parseCoordinate("from", q.Get("from")); err != nil {
		return req, err
	}
	if req.To, err = parseCoordinate("to", q.Get("to")); err != nil {
		return req, err
	}
	return req, nil
}
