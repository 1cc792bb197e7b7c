package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyOutput  = "output"
	keyLogging = "logging"
	keyFactors = "factors"
	keyStore   = "store"
	keyServer  = "server"
)

// ShallowMergeYAML loads a YAML file and merges its sections onto target.
// Fields present in the file override target; absent fields and sections
// keep their current values. Unknown top-level keys are rejected.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing config YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = unmarshalSection(target, key, &node); err != nil {
			return fmt.Errorf("applying config section %q: %w", key, err)
		}
	}
	return nil
}

// unmarshalSection decodes node onto the section of target named key.
func unmarshalSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyOutput:
		v := target.Output
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Output = v
	case keyLogging:
		v := target.Logging
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	case keyFactors:
		v := target.Factors
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Factors = v
	case keyStore:
		v := target.Store
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Store = v
	case keyServer:
		v := target.Server
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Server = v
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
