package source

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"cb9-core/internal/config/schema"
	"cb9-core/internal/constants"
	coreerrors "cb9-core/internal/core/errors"
	"cb9-core/internal/utils"
)

// ConfigFileName is the file name searched for in standard locations
const ConfigFileName = "cb9.yaml"

// YAMLSource loads configuration from YAML files
type YAMLSource struct {
	paths    []string // list of YAML file paths to load
	required bool     // missing files are an error
}

// NewYAMLSource creates a new YAMLSource with the specified file paths
// Missing files are skipped silently
func NewYAMLSource(paths ...string) *YAMLSource {
	return &YAMLSource{
		paths: paths,
	}
}

// NewRequiredYAMLSource is like NewYAMLSource but fails on missing files
func NewRequiredYAMLSource(paths ...string) *YAMLSource {
	return &YAMLSource{
		paths:    paths,
		required: true,
	}
}

// Name returns the source name
func (s *YAMLSource) Name() string {
	return "yaml"
}

// Priority returns the source priority
func (s *YAMLSource) Priority() int {
	return PriorityYAML
}

// LoadInto loads YAML configuration into the config structure
// Files are loaded in order, with later files overriding earlier ones
func (s *YAMLSource) LoadInto(cfg *schema.Root) error {
	for _, path := range s.paths {
		if path == "" {
			continue
		}

		// Expand path (handle ~, env vars and relative paths)
		expandedPath, err := utils.ExpandPath(path)
		if err != nil {
			return coreerrors.Wrapf(err, coreerrors.CodeConfigError, "failed to expand path %q", path)
		}

		// Check if file exists
		if _, err := os.Stat(expandedPath); os.IsNotExist(err) {
			if s.required {
				return coreerrors.Newf(coreerrors.CodeConfigError, "config file not found: %s", expandedPath)
			}
			continue
		}

		// Read file
		data, err := os.ReadFile(expandedPath)
		if err != nil {
			return coreerrors.FromIO(err, expandedPath, "failed to read config file")
		}

		// Parse YAML
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return coreerrors.Wrapf(err, coreerrors.CodeConfigError, "failed to parse YAML file %q", expandedPath)
		}
	}

	return nil
}

// FindConfigFile searches for a configuration file in standard locations
// Returns the first found file path, or empty string if none found
func FindConfigFile(configFile string) string {
	// If explicitly specified, use that
	if configFile != "" {
		if expanded, err := utils.ExpandPath(configFile); err == nil {
			return expanded
		}
		return configFile
	}

	searchPaths := []string{
		filepath.Join(".", ConfigFileName),
	}

	// Add user config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "cb9", ConfigFileName))
	}

	// Add the default script root
	searchPaths = append(searchPaths, filepath.Join(constants.DefaultRootDir, ConfigFileName))

	// Search for first existing file
	for _, path := range searchPaths {
		expanded, err := utils.ExpandPath(path)
		if err != nil {
			continue
		}
		if _, err := os.Stat(expanded); err == nil {
			return expanded
		}
	}

	return ""
}
