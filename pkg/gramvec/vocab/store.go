package vocab

import (
	"errors"
	"fmt"
	"os"

	"github.com/cognitext/gramvec/pkg/gramvec/codec"
)

// ErrMappingNotFound is returned when no mapping file exists at the
// requested path.
var ErrMappingNotFound = errors.New("bigram mapping not found")

// Store persists mappings as indented JSON. Keys are written in sorted
// order, so files from identical counts diff cleanly.
type Store struct {
	Codec codec.Codec
}

func (s Store) codec() codec.Codec {
	if s.Codec != nil {
		return s.Codec
	}
	return codec.Default
}

// Save writes the mapping to path, replacing any existing file.
func (s Store) Save(path string, m Mapping) error {
	data, err := s.codec().MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mapping: %w", err)
	}
	return nil
}

// Load reads and validates the mapping at path.
func (s Store) Load(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMappingNotFound, path)
		}
		return nil, fmt.Errorf("failed to read mapping: %w", err)
	}

	var m Mapping
	if err := s.codec().Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse mapping %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mapping %s: %w", path, err)
	}
	return m, nil
}
