package pkgindex

// SpecFile represents the structure of a package specification file.
type SpecFile struct {
	Name         string          `yaml:"name"`
	Version      string          `yaml:"version"`
	Dependencies []DependencyDTO `yaml:"dependencies"`
}

// DependencyDTO represents one declared dependency in a specification file.
type DependencyDTO struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}
