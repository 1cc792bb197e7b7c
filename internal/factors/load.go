package factors

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse builds a Table from a YAML document.
// Unknown keys are rejected so that typos in factor files do not silently
// fall back to zero values.
func Parse(data []byte) (*Table, error) {
	var spec Spec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("%w: parsing YAML: %w", ErrInvalidTable, err)
	}
	return New(spec)
}

// LoadFile reads and parses a YAML factor table from path.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading factor table %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading factor table %s: %w", path, err)
	}
	return t, nil
}

// MarshalYAML renders the table in the format Parse accepts.
func (t *Table) MarshalYAML() (interface{}, error) {
	return t.Spec(), nil
}
