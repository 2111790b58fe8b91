package render

import (
	"context"
	"io"
	"sync"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/encoding/protodelim"
	"google.golang.org/protobuf/proto"
)

const gtfsRealtimeVersion = "2.0"

// FeedMessage wraps one frame as a GTFS-realtime vehicle position. The entity
// id is the session id, falling back to the flight code.
func FeedMessage(f Frame) *gtfsrtpb.FeedMessage {
	id := f.SessionID
	if id == "" {
		id = f.Code
	}
	ts := uint64(f.Time.Unix())

	vp := &gtfsrtpb.VehiclePosition{
		Position: &gtfsrtpb.Position{
			Latitude:  proto.Float32(float32(f.Sample.Position.Lat)),
			Longitude: proto.Float32(float32(f.Sample.Position.Lon)),
			Bearing:   proto.Float32(float32(f.Sample.Bearing)),
			Odometer:  proto.Float64(f.Sample.TraveledMeters),
		},
		Timestamp:     proto.Uint64(ts),
		CurrentStatus: gtfsrtpb.VehiclePosition_IN_TRANSIT_TO.Enum(),
	}
	if f.Code != "" {
		vp.Vehicle = &gtfsrtpb.VehicleDescriptor{
			Id:    proto.String(f.Code),
			Label: proto.String(f.Code),
		}
	}
	if f.Route != "" {
		vp.Trip = &gtfsrtpb.TripDescriptor{RouteId: proto.String(f.Route)}
	}

	return &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String(gtfsRealtimeVersion),
			Incrementality:      gtfsrtpb.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(ts),
		},
		Entity: []*gtfsrtpb.FeedEntity{{
			Id:      proto.String(id),
			Vehicle: vp,
		}},
	}
}

// MarshalFeed encodes a frame as a single GTFS-realtime FeedMessage.
func MarshalFeed(f Frame) ([]byte, error) {
	return proto.Marshal(FeedMessage(f))
}

// FeedBackend writes size-delimited GTFS-realtime FeedMessages.
type FeedBackend struct {
	mu sync.Mutex
	w  io.Writer
}

func NewFeedBackend(w io.Writer) *FeedBackend {
	return &FeedBackend{w: w}
}

func (b *FeedBackend) Render(ctx context.Context, f Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := protodelim.MarshalTo(b.w, FeedMessage(f))
	return err
}
