// Package theme maps weather conditions to the artwork and background gradients
// shown behind the result panel.
package theme

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/alexivanou/weather-widget/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed theme.yaml
var defaultTheme []byte

// Style is the resolved presentation for one condition
type Style struct {
	Image    string `yaml:"image" json:"image,omitempty"`
	Gradient string `yaml:"gradient" json:"gradient"`
}

// Table holds the static condition lookup tables
type Table struct {
	DefaultGradient string                     `yaml:"default_gradient"`
	Conditions      map[model.Condition]Style `yaml:"conditions"`
}

// Default returns the built-in table
func Default() *Table {
	t, err := Parse(defaultTheme)
	if err != nil {
		panic(fmt.Sprintf("theme: embedded table is invalid: %v", err))
	}
	return t
}

// Load reads a table from path, or returns the built-in table when path is empty
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML table
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse theme: %w", err)
	}
	if t.DefaultGradient == "" {
		return nil, errors.New("theme: default_gradient is required")
	}
	if t.Conditions == nil {
		t.Conditions = make(map[model.Condition]Style)
	}
	return &t, nil
}

// Lookup resolves a condition. Unmapped or empty conditions get the default
// gradient and no image.
func (t *Table) Lookup(c model.Condition) Style {
	s, ok := t.Conditions[c]
	if !ok || c == "" {
		return Style{Gradient: t.DefaultGradient}
	}
	if s.Gradient == "" {
		s.Gradient = t.DefaultGradient
	}
	return s
}
