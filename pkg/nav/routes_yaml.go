package nav

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRoutes reads a YAML route table (name → pattern mapping) and returns a
// populated registry.
func LoadRoutes(r io.Reader) (*Routes, error) {
	if r == nil {
		return nil, fmt.Errorf("nav: route reader is required")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("nav: read routes: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("nav: parse routes: %w", err)
	}

	routes := NewRoutes()
	for name, pattern := range raw {
		if err := routes.Register(name, pattern); err != nil {
			return nil, err
		}
	}
	return routes, nil
}

// LoadRoutesFile reads a YAML route table from disk.
func LoadRoutesFile(path string) (*Routes, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("nav: open routes: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	return LoadRoutes(file)
}
