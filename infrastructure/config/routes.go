package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Dimo99/angular/domain/routes"
)

// routesFile is the on-disk shape of a route configuration file
type routesFile struct {
	Routes []routes.Route `yaml:"routes"`
}

// LoadRoutes reads and validates a YAML route configuration file
func LoadRoutes(path string) ([]routes.Route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading routes file %s: %w", path, err)
	}

	var file routesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing routes file %s: %w", path, err)
	}
	if err := routes.Validate(file.Routes); err != nil {
		return nil, fmt.Errorf("routes file %s: %w", path, err)
	}
	return file.Routes, nil
}
