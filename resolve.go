package surfacenav

import (
	"github.com/theoremus-urban-solutions/surface-nav/geo"
	"github.com/theoremus-urban-solutions/surface-nav/guidance"
	"github.com/theoremus-urban-solutions/surface-nav/route"
)

// RouteRequest names a route by flight code, by taxiway/runway, or by two
// points on the taxiway network. From/To take precedence over
// Taxiway/Runway, which take precedence over Code.
type RouteRequest struct {
	Code    string
	Taxiway string
	Runway  string
	From    *geo.Coordinate
	To      *geo.Coordinate
}

// Resolved is a route ready to simulate.
type Resolved struct {
	Code  string
	Route *route.Route
	Plan  guidance.Plan
}

// networkPlan is used for routes computed on the taxiway network, which carry
// no leg names.
func networkPlan() guidance.Plan {
	return guidance.Plan{
		Legs:  []guidance.Leg{{Name: "Taxi", EndFraction: 1}},
		Final: "Hold short",
	}
}

// Resolve picks the route for req.
func (a *App) Resolve(req RouteRequest) (Resolved, error) {
	switch {
	case req.From != nil || req.To != nil:
		if req.From == nil || req.To == nil {
			return Resolved{}, &QueryError{Msg: "Both from and to are required."}
		}
		if a.Network == nil {
			return Resolved{}, &QueryError{Msg: "No taxiway network is configured."}
		}
		r, err := a.Network.FindPath(*req.From, *req.To)
		if err != nil {
			return Resolved{}, &QueryError{Msg: err.Error()}
		}
		return Resolved{Code: req.Code, Route: r, Plan: networkPlan()}, nil

	case req.Taxiway != "" || req.Runway != "":
		e := a.Provider.Select(req.Taxiway, req.Runway)
		if e == nil {
			return Resolved{}, &QueryError{Msg: "No route for taxiway " + req.Taxiway + " runway " + req.Runway + "."}
		}
		return Resolved{Code: req.Code, Route: e.Route, Plan: e.Plan}, nil

	case req.Code != "":
		sel := a.Provider.RouteFor(req.Code)
		return Resolved{Code: req.Code, Route: sel.Route, Plan: sel.Plan}, nil

	default:
		return Resolved{}, &QueryError{Msg: "You must provide a code, a taxiway and runway, or from and to."}
	}
}
