package codec

import (
	"github.com/goccy/go-json"
)

// GoJSON implements Codec using goccy/go-json.
type GoJSON struct{}

// Marshal returns the JSON encoding of v.
func (GoJSON) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// MarshalIndent is like Marshal but applies indent to format the output.
func (GoJSON) MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return json.MarshalIndent(v, prefix, indent)
}

// Unmarshal parses the JSON-encoded data and stores the result in v.
func (GoJSON) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Name returns the name of the codec.
func (GoJSON) Name() string {
	return "go-json"
}
