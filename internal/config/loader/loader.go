// Package loader provides multi-source configuration loading
package loader

import (
	"sort"

	"cb9-core/internal/config/schema"
	"cb9-core/internal/config/source"
	"cb9-core/internal/constants"
	coreerrors "cb9-core/internal/core/errors"
	corelog "cb9-core/internal/core/log"
)

// Loader loads configuration from multiple sources in priority order
type Loader struct {
	sources []source.Source
}

// NewLoader creates a new Loader
func NewLoader() *Loader {
	return &Loader{
		sources: make([]source.Source, 0),
	}
}

// AddSource adds a configuration source
func (l *Loader) AddSource(s source.Source) {
	l.sources = append(l.sources, s)
}

// Load loads configuration from all sources in priority order
// Lower priority sources are loaded first, then higher priority sources override
func (l *Loader) Load() (*schema.Root, error) {
	if len(l.sources) == 0 {
		return nil, coreerrors.New(coreerrors.CodeConfigError, "no configuration sources registered")
	}

	// Sort sources by priority (ascending)
	sorted := make([]source.Source, len(l.sources))
	copy(sorted, l.sources)
	sort.Stable(source.ByPriority(sorted))

	cfg := &schema.Root{}
	for _, s := range sorted {
		corelog.Debugf("Loading configuration from source: %s (priority %d)", s.Name(), s.Priority())
		if err := s.LoadInto(cfg); err != nil {
			return nil, coreerrors.Wrapf(err, coreerrors.CodeConfigError,
				"failed to load configuration from source %s", s.Name())
		}
	}

	return cfg, nil
}

// LoaderBuilder helps build a Loader with common configurations
type LoaderBuilder struct {
	loader     *Loader
	prefix     string
	configFile string
	extra      []source.Source
}

// NewLoaderBuilder creates a new LoaderBuilder
func NewLoaderBuilder() *LoaderBuilder {
	return &LoaderBuilder{
		loader: NewLoader(),
		prefix: constants.EnvPrefix,
	}
}

// WithPrefix sets the environment variable prefix
func (b *LoaderBuilder) WithPrefix(prefix string) *LoaderBuilder {
	b.prefix = prefix
	return b
}

// WithConfigFile sets the configuration file path
// An explicit file must exist; without one the standard locations are searched
func (b *LoaderBuilder) WithConfigFile(path string) *LoaderBuilder {
	b.configFile = path
	return b
}

// WithSource adds an extra source, e.g. CLI flag overrides
func (b *LoaderBuilder) WithSource(s source.Source) *LoaderBuilder {
	b.extra = append(b.extra, s)
	return b
}

// Build creates the configured Loader
func (b *LoaderBuilder) Build() *Loader {
	// 1. Default source (lowest priority)
	b.loader.AddSource(source.NewDefaultSource())

	// 2. YAML source
	if b.configFile != "" {
		b.loader.AddSource(source.NewRequiredYAMLSource(b.configFile))
		corelog.WithField(constants.LogFieldSource, b.configFile).Debug("Using config file")
	} else if found := source.FindConfigFile(""); found != "" {
		b.loader.AddSource(source.NewYAMLSource(found))
		corelog.WithField(constants.LogFieldSource, found).Debug("Using config file")
	}

	// 3. Environment variables
	b.loader.AddSource(source.NewEnvSource(b.prefix))

	// 4. Extra sources
	for _, s := range b.extra {
		b.loader.AddSource(s)
	}

	return b.loader
}

// Load is a convenience function that creates a loader and loads configuration
func Load(configFile string) (*schema.Root, error) {
	return NewLoaderBuilder().
		WithConfigFile(configFile).
		Build().
		Load()
}
