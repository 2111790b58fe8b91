package flight

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iancoleman/orderedmap"
)

// Field is one key/value of the status document, in document order.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Status is the latest known state of one flight.
type Status struct {
	Code      string    `json:"airplane_code"`
	Taxiway   string    `json:"taxiway"`
	Runway    string    `json:"runway"`
	Fields    []Field   `json:"fields"`
	FetchedAt time.Time `json:"fetched_at"`
}

// ParseStatus decodes a flight-status JSON object. The runway may be a
// number or a string.
func ParseStatus(data []byte) (*Status, error) {
	om := orderedmap.New()
	if err := json.Unmarshal(data, om); err != nil {
		return nil, fmt.Errorf("decode flight status: %w", err)
	}

	s := &Status{}
	for _, k := range om.Keys() {
		v, _ := om.Get(k)
		display := displayValue(v)
		s.Fields = append(s.Fields, Field{Key: k, Value: display})
		switch strings.ToLower(k) {
		case "airplane_code":
			s.Code = display
		case "taxiway":
			s.Taxiway = display
		case "runway":
			s.Runway = display
		}
	}
	if s.Code == "" {
		return nil, fmt.Errorf("flight status has no airplane_code")
	}
	return s, nil
}

func displayValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// Matches reports whether the status belongs to code, ignoring case. An
// empty code matches nothing.
func (s *Status) Matches(code string) bool {
	if s == nil || code == "" {
		return false
	}
	return strings.EqualFold(s.Code, code)
}
