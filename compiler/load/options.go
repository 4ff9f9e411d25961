package load

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options are the per-project generator toggles, usually read from the
// project's drift.yaml.
type Options struct {
	// MutableClasses generates data classes with settable fields instead
	// of immutable ones.
	MutableClasses bool `yaml:"mutable_classes"`
	// Companions generates a partial-update companion next to each
	// table's row class.
	Companions bool `yaml:"companions"`
	// UseRowClassCompanionName derives companion names from the row-class
	// name instead of the table name.
	UseRowClassCompanionName bool `yaml:"use_row_class_companion_name"`
	// Modular emits one output unit per source module instead of one per
	// schema.
	Modular bool `yaml:"modular"`
}

// DefaultOptions returns the options used when no project file is
// present.
func DefaultOptions() Options {
	return Options{Companions: true}
}

// ReadOptions reads and parses a project options file.
func ReadOptions(path string) (Options, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read options %s: %w", path, err)
	}
	return ParseOptions(buf)
}

// ParseOptions parses a project options document. Unset keys keep their
// defaults.
func ParseOptions(buf []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(buf, &opts); err != nil {
		return Options{}, fmt.Errorf("parse options: %w", err)
	}
	return opts, nil
}
