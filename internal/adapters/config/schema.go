package config

// Warpackfile represents the structure of the warpack.yaml configuration file.
type Warpackfile struct {
	Version     string        `yaml:"version"`
	Application string        `yaml:"application"`
	Root        string        `yaml:"root"`
	Staging     string        `yaml:"staging"`
	SourceRoots []string      `yaml:"source_roots"`
	PublicRoot  string        `yaml:"public_root"`
	Include     []string      `yaml:"include"`
	Exclude     []string      `yaml:"exclude"`
	Descriptor  DescriptorDTO `yaml:"descriptor"`
	Archive     ArchiveDTO    `yaml:"archive"`
	Packages    PackagesDTO   `yaml:"packages"`
}

// DescriptorDTO represents the descriptor section of the configuration.
type DescriptorDTO struct {
	Template string `yaml:"template"`
	Output   string `yaml:"output"`
}

// ArchiveDTO represents the archive section of the configuration.
type ArchiveDTO struct {
	Output  string   `yaml:"output"`
	Command []string `yaml:"command"`
}

// PackagesDTO represents the packages section of the configuration.
type PackagesDTO struct {
	Repository    string           `yaml:"repository"`
	Transitive    bool             `yaml:"transitive"`
	UnpackCommand []string         `yaml:"unpack_command"`
	Requirements  []RequirementDTO `yaml:"requirements"`
}

// RequirementDTO represents a single package requirement in the configuration.
type RequirementDTO struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}
