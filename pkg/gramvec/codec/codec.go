// Package codec defines the serialization interface used for mapping
// files and reports, with implementations for the standard library and
// goccy/go-json.
package codec

// Codec is the interface for marshaling and unmarshaling of data.
type Codec interface {
	// Marshal returns the wire format of v.
	Marshal(v any) ([]byte, error)
	// MarshalIndent is like Marshal but applies indent to format the output.
	MarshalIndent(v any, prefix, indent string) ([]byte, error)
	// Unmarshal parses the wire format into v.
	Unmarshal(data []byte, v any) error
	// Name returns the name of the Codec implementation.
	Name() string
}

// Default is the codec used when none is configured.
var Default Codec = GoJSON{}

// ByName returns the codec registered under name.
func ByName(name string) (Codec, bool) {
	switch name {
	case JSON{}.Name():
		return JSON{}, true
	case GoJSON{}.Name():
		return GoJSON{}, true
	default:
		return nil, false
	}
}
