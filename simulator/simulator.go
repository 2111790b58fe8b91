package simulator

import (
	"fmt"

	"github.com/theoremus-urban-solutions/surface-nav/geo"
	"github.com/theoremus-urban-solutions/surface-nav/route"
)

const (
	DefaultMaxFrame        = 30000
	DefaultLookaheadFrames = 100
)

// DefaultFallback is where the aircraft is drawn when there is no usable route.
var DefaultFallback = geo.At(-66.10049911054594, 18.45718748211543)

// Config holds the simulator constants.
type Config struct {
	// MaxFrame is the frame at which the route is fully traversed.
	MaxFrame int
	// LookaheadFrames is how far ahead the heading is sampled.
	LookaheadFrames int
	// Fallback is returned for degenerate routes.
	Fallback geo.Coordinate
}

// DefaultConfig returns the stock constants.
func DefaultConfig() Config {
	return Config{
		MaxFrame:        DefaultMaxFrame,
		LookaheadFrames: DefaultLookaheadFrames,
		Fallback:        DefaultFallback,
	}
}

// PositionSample is the aircraft pose for one frame.
type PositionSample struct {
	Frame    int            `json:"frame" msgpack:"frame"`
	Position geo.Coordinate `json:"position" msgpack:"position"`
	// Bearing is degrees clockwise from true north in [0, 360).
	Bearing        float64 `json:"bearing" msgpack:"bearing"`
	Fraction       float64 `json:"fraction" msgpack:"fraction"`
	TraveledMeters float64 `json:"traveled_m" msgpack:"traveled_m"`
	TotalMeters    float64 `json:"total_m" msgpack:"total_m"`
	// Fallback is set when the route was degenerate.
	Fallback bool `json:"fallback,omitempty" msgpack:"fallback,omitempty"`
}

// Simulator samples positions along a route. It is stateless and safe for
// concurrent use.
type Simulator struct {
	cfg Config
}

// New validates cfg and returns a simulator.
func New(cfg Config) (*Simulator, error) {
	if cfg.MaxFrame <= 0 {
		return nil, fmt.Errorf("max frame must be positive, got %d", cfg.MaxFrame)
	}
	if cfg.LookaheadFrames < 0 {
		return nil, fmt.Errorf("lookahead frames must not be negative, got %d", cfg.LookaheadFrames)
	}
	if _, err := route.New("fallback", []geo.Coordinate{cfg.Fallback}); err != nil {
		return nil, fmt.Errorf("fallback: %w", err)
	}
	return &Simulator{cfg: cfg}, nil
}

// Config returns the simulator constants.
func (s *Simulator) Config() Config { return s.cfg }

// Fraction returns frame/MaxFrame clamped to [0, 1].
func (s *Simulator) Fraction(frame int) float64 {
	return s.fraction(float64(frame))
}

func (s *Simulator) fraction(frame float64) float64 {
	f := frame / float64(s.cfg.MaxFrame)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Sample returns the aircraft position at frame and its heading toward the
// position LookaheadFrames later. Routes that are nil or shorter than two
// points yield the fallback coordinate with bearing 0.
func (s *Simulator) Sample(r *route.Route, frame int) PositionSample {
	if r.Degenerate() {
		return PositionSample{
			Frame:    frame,
			Position: s.cfg.Fallback,
			Fallback: true,
		}
	}

	total := r.Length()
	fraction := s.Fraction(frame)
	traveled := total * fraction
	current := r.PointAt(traveled)
	// summed in float64 so frames near math.MaxInt cannot wrap
	ahead := r.PointAt(total * s.fraction(float64(frame)+float64(s.cfg.LookaheadFrames)))

	return PositionSample{
		Frame:          frame,
		Position:       current,
		Bearing:        geo.InitialBearing(current, ahead),
		Fraction:       fraction,
		TraveledMeters: traveled,
		TotalMeters:    total,
	}
}
