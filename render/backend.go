package render

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Backend consumes frames.
type Backend interface {
	Render(ctx context.Context, f Frame) error
}

// Format names a Backend encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
	FormatFeed    Format = "pb"
)

// NewBackend returns the backend for format writing to w.
func NewBackend(format Format, w io.Writer) (Backend, error) {
	switch Format(strings.ToLower(string(format))) {
	case FormatJSON, "":
		return NewJSONBackend(w), nil
	case FormatMsgpack:
		return NewMsgpackBackend(w), nil
	case FormatFeed:
		return NewFeedBackend(w), nil
	default:
		return nil, fmt.Errorf("unknown render format %q", format)
	}
}

// JSONBackend writes one JSON object per line.
type JSONBackend struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func NewJSONBackend(w io.Writer) *JSONBackend {
	return &JSONBackend{enc: json.NewEncoder(w)}
}

func (b *JSONBackend) Render(ctx context.Context, f Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enc.Encode(f)
}

// MsgpackBackend writes a stream of MessagePack frames using the JSON field
// names.
type MsgpackBackend struct {
	mu  sync.Mutex
	enc *msgpack.Encoder
}

func NewMsgpackBackend(w io.Writer) *MsgpackBackend {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	return &MsgpackBackend{enc: enc}
}

func (b *MsgpackBackend) Render(ctx context.Context, f Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enc.Encode(f)
}

// Collector keeps rendered frames in memory.
type Collector struct {
	mu     sync.Mutex
	frames []Frame
}

func (c *Collector) Render(_ context.Context, f Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, f)
	return nil
}

// Frames returns a copy of everything rendered so far.
func (c *Collector) Frames() []Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Frame(nil), c.frames...)
}

// Last returns the most recent frame.
func (c *Collector) Last() (Frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.frames) == 0 {
		return Frame{}, false
	}
	return c.frames[len(c.frames)-1], true
}
