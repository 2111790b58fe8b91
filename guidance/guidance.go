package guidance

import (
	"fmt"

	"github.com/theoremus-urban-solutions/surface-nav/simulator"
)

// Maneuver is the icon hint for the next instruction.
type Maneuver string

const (
	ManeuverTurnLeft  Maneuver = "turn-left"
	ManeuverTurnRight Maneuver = "turn-right"
	ManeuverStraight  Maneuver = "straight"
	ManeuverTakeoff   Maneuver = "takeoff"
	ManeuverNone      Maneuver = ""
)

// Leg is a named stretch of the route ending at EndFraction of its length.
type Leg struct {
	Name        string   `json:"name" yaml:"name" validate:"required"`
	EndFraction float64  `json:"endFraction" yaml:"endFraction" validate:"gt=0,lte=1"`
	Turn        Maneuver `json:"turn,omitempty" yaml:"turn,omitempty"`
}

// Plan is the ordered list of legs and the action after the last one.
type Plan struct {
	Legs  []Leg  `json:"legs" yaml:"legs" validate:"required,min=1,dive"`
	Final string `json:"final" yaml:"final"`
}

// Instruction is what the panel displays for one frame.
type Instruction struct {
	Current  string   `json:"current"`
	Next     string   `json:"next"`
	Distance string   `json:"distance,omitempty"`
	Maneuver Maneuver `json:"maneuver,omitempty"`
	// RemainingMeters is the distance to the end of the current leg.
	RemainingMeters float64 `json:"remaining_m"`
}

// DefaultPlan taxis along Taxiway A, turns left onto Runway 9 at 26% of the
// route and takes off.
func DefaultPlan() Plan {
	return Plan{
		Legs: []Leg{
			{Name: "Taxiway A", EndFraction: 0.26, Turn: ManeuverTurnLeft},
			{Name: "Runway 9", EndFraction: 1},
		},
		Final: "Takeoff",
	}
}

// Check verifies that leg fractions increase and the last leg ends the route.
func (p Plan) Check() error {
	if len(p.Legs) == 0 {
		return fmt.Errorf("plan has no legs")
	}
	prev := 0.0
	for i, l := range p.Legs {
		if l.EndFraction <= prev || l.EndFraction > 1 {
			return fmt.Errorf("leg %d (%s): end fraction %g must be in (%g, 1]", i, l.Name, l.EndFraction, prev)
		}
		prev = l.EndFraction
	}
	if prev != 1 {
		return fmt.Errorf("last leg must end at fraction 1, got %g", prev)
	}
	return nil
}

// legAt returns the index of the leg containing fraction.
func (p Plan) legAt(fraction float64) int {
	for i, l := range p.Legs {
		if fraction < l.EndFraction {
			return i
		}
	}
	return len(p.Legs) - 1
}

// Instruct builds the panel for a sample. Fallback samples have no route and
// produce an empty instruction.
func (p Plan) Instruct(s simulator.PositionSample) Instruction {
	if s.Fallback || len(p.Legs) == 0 {
		return Instruction{}
	}
	i := p.legAt(s.Fraction)
	leg := p.Legs[i]

	in := Instruction{Current: leg.Name}
	if i+1 < len(p.Legs) {
		in.Next = p.Legs[i+1].Name
		in.RemainingMeters = (leg.EndFraction - s.Fraction) * s.TotalMeters
		in.Distance = PresentableDistance(in.RemainingMeters)
		in.Maneuver = leg.Turn
		if in.Maneuver == ManeuverNone {
			in.Maneuver = ManeuverStraight
		}
		return in
	}

	in.Next = p.Final
	in.RemainingMeters = (1 - s.Fraction) * s.TotalMeters
	if p.Final != "" {
		in.Maneuver = ManeuverTakeoff
	}
	return in
}
