// Package config holds the small set of toggles this core leaves
// implementation-defined: whether the standard library ingot is
// auto-registered as an external dependency, and how strictly prelude
// shadowing is treated.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is a plain struct of analysis toggles, loaded from YAML the same
// way the teacher's inspector/graph.Config is populated by its factory.
type Config struct {
	// AutoRegisterStd, when true, registers an ingot named "std" as an
	// implicit external dependency of every built ingot that doesn't
	// already declare one under that name.
	AutoRegisterStd bool `yaml:"autoRegisterStd"`
	// StdIngotPath is where the standard library ingot's sources live,
	// consulted only when AutoRegisterStd is true.
	StdIngotPath string `yaml:"stdIngotPath"`
	// StrictPrelude, when true, treats a user declaration shadowing a
	// prelude name as an error-severity diagnostic instead of a warning.
	StrictPrelude bool `yaml:"strictPrelude"`
}

// Default returns the configuration this core uses when the caller
// supplies none: the standard library is auto-registered, and prelude
// shadowing is a warning (matching the spec's "duplicate-name diagnostic",
// which does not mandate fatal severity).
func Default() Config {
	return Config{
		AutoRegisterStd: true,
		StdIngotPath:    "std",
		StrictPrelude:   false,
	}
}

// Load parses a YAML document into a Config, starting from Default() so
// any field the document omits keeps its default.
func Load(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	return cfg, nil
}
