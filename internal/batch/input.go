package batch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ecosystemplus/farmcarbon/internal/farm"
)

// ErrInvalidInputFile is returned when a batch file cannot be decoded.
var ErrInvalidInputFile = errors.New("invalid batch input file")

// Item is one farm of a batch.
type Item struct {
	// Name labels the farm in output; it defaults to its 1-based position.
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	farm.Record `yaml:",inline"`
	// Month selects the season when the record has none.
	Month int `json:"month,omitempty" yaml:"month,omitempty"`
}

type inputFile struct {
	Farms []Item `yaml:"farms"`
}

// Parse decodes a batch file of the form
//
//	farms:
//	  - name: hillside plot
//	    area_hectares: 2.5
//	    farming_method: organic
//	    ...
func Parse(data []byte) ([]Item, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var in inputFile
	if err := dec.Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInputFile, err)
	}
	if len(in.Farms) == 0 {
		return nil, fmt.Errorf("%w: no farms listed", ErrInvalidInputFile)
	}
	for i := range in.Farms {
		if in.Farms[i].Name == "" {
			in.Farms[i].Name = fmt.Sprintf("farm-%d", i+1)
		}
	}
	return in.Farms, nil
}

// LoadFile reads and parses the batch file at path.
func LoadFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file %s: %w", path, err)
	}
	return Parse(data)
}
