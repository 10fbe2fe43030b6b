// Package config provides the configuration loader for warpack.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/warpack/warpack/internal/core/domain"
	"github.com/warpack/warpack/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

var validApplicationNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

var (
	defaultArchiveCommand = []string{"jar", "-cf", "{output}", "-C", "{dir}", "."}
	defaultUnpackCommand  = []string{"gem", "unpack", "{archive}", "--target={dest}"}
)

// Load reads and validates the configuration at the given path. The path
// may name the configuration file directly or a directory containing
// warpack.yaml.
func (l *Loader) Load(path string) (*domain.Config, error) {
	configPath, err := findConfiguration(path)
	if err != nil {
		return nil, err
	}

	var file Warpackfile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, err
	}

	return l.buildConfig(configPath, &file)
}

func findConfiguration(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(domain.ErrConfigNotFound, "path", path)
	}

	if !info.IsDir() {
		return path, nil
	}

	configPath := filepath.Join(path, domain.ConfigFileName)
	if _, err := os.Stat(configPath); err != nil {
		return "", zerr.With(domain.ErrConfigNotFound, "path", configPath)
	}
	return configPath, nil
}

func (l *Loader) buildConfig(configPath string, file *Warpackfile) (*domain.Config, error) {
	if err := validateApplicationName(file.Application); err != nil {
		return nil, err
	}

	root := resolveRoot(configPath, file.Root)

	if file.Staging == "" {
		return nil, zerr.With(domain.ErrMissingStagingDir, "config", configPath)
	}
	if len(file.SourceRoots) == 0 {
		return nil, zerr.With(domain.ErrMissingSourceRoots, "config", configPath)
	}

	if err := validatePatterns(file.Include); err != nil {
		return nil, err
	}
	if err := validatePatterns(file.Exclude); err != nil {
		return nil, err
	}

	descriptorOutput, err := resolveDescriptorOutput(file.Descriptor.Output)
	if err != nil {
		return nil, err
	}

	requirements, err := buildRequirements(file.Packages.Requirements)
	if err != nil {
		return nil, err
	}

	if len(requirements) > 0 && file.Packages.Repository == "" {
		return nil, zerr.With(domain.ErrMissingRepositoryDir, "config", configPath)
	}
	if len(requirements) == 0 && packagesConfigured(&file.Packages) {
		l.Logger.Warn("packages settings have no effect without requirements")
	}

	publicRoot := ""
	if file.PublicRoot != "" {
		publicRoot = resolvePath(root, file.PublicRoot)
	}
	templatePath := ""
	if file.Descriptor.Template != "" {
		templatePath = resolvePath(root, file.Descriptor.Template)
	}
	repositoryDir := ""
	if file.Packages.Repository != "" {
		repositoryDir = resolvePath(root, file.Packages.Repository)
	}
	archiveOutput := filepath.Join(root, file.Application+domain.ArchiveSuffix)
	if file.Archive.Output != "" {
		archiveOutput = resolvePath(root, file.Archive.Output)
	}

	return &domain.Config{
		Application: file.Application,
		Root:        root,
		StagingDir:  resolvePath(root, file.Staging),
		SourceRoots: l.resolveSourceRoots(root, file.SourceRoots),
		PublicRoot:  publicRoot,
		Includes:    file.Include,
		Excludes:    file.Exclude,
		Descriptor: domain.DescriptorConfig{
			TemplatePath: templatePath,
			OutputPath:   descriptorOutput,
		},
		Archive: domain.ArchiveConfig{
			OutputPath: archiveOutput,
			Command:    commandOrDefault(file.Archive.Command, defaultArchiveCommand),
		},
		Packages: domain.PackagesConfig{
			RepositoryDir: repositoryDir,
			Transitive:    file.Packages.Transitive,
			UnpackCommand: commandOrDefault(file.Packages.UnpackCommand, defaultUnpackCommand),
			Requirements:  requirements,
		},
	}, nil
}

func validateApplicationName(name string) error {
	if name == "" {
		return domain.ErrMissingApplicationName
	}
	if !validApplicationNameRegex.MatchString(name) {
		return zerr.With(domain.ErrInvalidApplicationName, "application", name)
	}
	return nil
}

func validatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return zerr.With(domain.ErrInvalidPattern, "pattern", pattern)
		}
	}
	return nil
}

// resolveDescriptorOutput normalizes the staging-relative descriptor output
// path and rejects paths that would land outside the staging tree.
func resolveDescriptorOutput(output string) (string, error) {
	if output == "" {
		return domain.DefaultDescriptorPath(), nil
	}

	cleaned := filepath.Clean(output)
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", zerr.With(domain.ErrInvalidDescriptorPath, "output", output)
	}
	return cleaned, nil
}

func buildRequirements(dtos []RequirementDTO) ([]domain.Requirement, error) {
	if len(dtos) == 0 {
		return nil, nil
	}

	requirements := make([]domain.Requirement, 0, len(dtos))
	seen := make(map[string]struct{}, len(dtos))
	for i, dto := range dtos {
		if dto.Name == "" {
			return nil, zerr.With(domain.ErrMissingRequirementName, "index", i)
		}
		if _, dup := seen[dto.Name]; dup {
			return nil, zerr.With(domain.ErrDuplicateRequirement, "package", dto.Name)
		}
		seen[dto.Name] = struct{}{}

		constraint, err := domain.ParseConstraint(dto.Version)
		if err != nil {
			return nil, zerr.With(err, "package", dto.Name)
		}

		requirements = append(requirements, domain.Requirement{Name: dto.Name, Constraint: constraint})
	}
	return requirements, nil
}

// resolveSourceRoots resolves the configured source roots against the
// project root, preserving order and dropping duplicates.
func (l *Loader) resolveSourceRoots(root string, configured []string) []string {
	resolved := make([]string, 0, len(configured))
	seen := make(map[string]struct{}, len(configured))
	for _, dir := range configured {
		abs := resolvePath(root, dir)
		if _, dup := seen[abs]; dup {
			l.Logger.Warn(fmt.Sprintf("source root %s is declared more than once, ignoring duplicate", dir))
			continue
		}
		seen[abs] = struct{}{}
		resolved = append(resolved, abs)
	}
	return resolved
}

func packagesConfigured(packages *PackagesDTO) bool {
	return packages.Repository != "" || packages.Transitive || len(packages.UnpackCommand) > 0
}

func commandOrDefault(command, fallback []string) []string {
	if len(command) == 0 {
		return slices.Clone(fallback)
	}
	return slices.Clone(command)
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(root, path))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
