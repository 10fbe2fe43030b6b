package ports

import "github.com/warpack/warpack/internal/core/domain"

// DescriptorRenderer produces the deployment descriptor for the staged
// application.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type DescriptorRenderer interface {
	// Render writes the descriptor to outputPath. An empty templatePath
	// selects the built-in template.
	Render(templatePath string, data domain.DescriptorData, outputPath string) error
}
