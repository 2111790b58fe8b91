package render

import (
	"time"

	"github.com/theoremus-urban-solutions/surface-nav/guidance"
	"github.com/theoremus-urban-solutions/surface-nav/simulator"
)

const (
	DefaultZoom          = 19
	DefaultPitch         = 70
	DefaultModelAltitude = -10
)

// Camera holds the follow-camera settings.
type Camera struct {
	Zoom  float64
	Pitch float64
	// ModelAltitude is the z offset of the aircraft model in meters.
	ModelAltitude float64
}

// DefaultCamera is a close, tilted chase view.
func DefaultCamera() Camera {
	return Camera{Zoom: DefaultZoom, Pitch: DefaultPitch, ModelAltitude: DefaultModelAltitude}
}

// ViewState is the map camera for one frame.
type ViewState struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      float64 `json:"zoom"`
	Pitch     float64 `json:"pitch"`
	Bearing   float64 `json:"bearing"`
}

// ModelPose places the aircraft model. Position is [lon, lat, z] and
// Orientation is [pitch, yaw, roll] in degrees.
type ModelPose struct {
	Position    [3]float64 `json:"position"`
	Orientation [3]float64 `json:"orientation"`
}

// Frame is everything a front end needs to draw one tick.
type Frame struct {
	SessionID string                   `json:"session_id,omitempty"`
	Code      string                   `json:"code,omitempty"`
	Route     string                   `json:"route,omitempty"`
	Time      time.Time                `json:"time"`
	Sample    simulator.PositionSample `json:"sample"`
	View      ViewState                `json:"view"`
	Model     ModelPose                `json:"model"`
	Guidance  guidance.Instruction     `json:"guidance"`
}

// View centers the camera on the sample and turns it to the heading.
func (c Camera) View(s simulator.PositionSample) ViewState {
	return ViewState{
		Latitude:  s.Position.Lat,
		Longitude: s.Position.Lon,
		Zoom:      c.Zoom,
		Pitch:     c.Pitch,
		Bearing:   s.Bearing,
	}
}

// Model returns the model pose for the sample. The model's nose points along
// -yaw, hence 360 - bearing.
func (c Camera) Model(s simulator.PositionSample) ModelPose {
	return ModelPose{
		Position:    [3]float64{s.Position.Lon, s.Position.Lat, c.ModelAltitude},
		Orientation: [3]float64{0, 360 - s.Bearing, 90},
	}
}

// Frame assembles a frame without session metadata.
func (c Camera) Frame(s simulator.PositionSample, in guidance.Instruction, at time.Time) Frame {
	return Frame{
		Time:     at,
		Sample:   s,
		View:     c.View(s),
		Model:    c.Model(s),
		Guidance: in,
	}
}
