package ports

import "github.com/warpack/warpack/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads and validates the configuration. The path may name the
	// configuration file directly or a directory containing warpack.yaml.
	Load(path string) (*domain.Config, error)
}
