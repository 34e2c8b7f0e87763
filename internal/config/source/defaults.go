package source

import (
	"cb9-core/internal/config/schema"
	"cb9-core/internal/constants"
	"cb9-core/internal/utils/logger"
)

// DefaultSource provides default configuration values
type DefaultSource struct{}

// NewDefaultSource creates a new DefaultSource
func NewDefaultSource() *DefaultSource {
	return &DefaultSource{}
}

// Name returns the source name
func (s *DefaultSource) Name() string {
	return "defaults"
}

// Priority returns the source priority
func (s *DefaultSource) Priority() int {
	return PriorityDefaults
}

// LoadInto loads default values into the configuration
func (s *DefaultSource) LoadInto(cfg *schema.Root) error {
	// Paths: logs and temp stay empty and resolve under root
	cfg.Paths.Root = constants.DefaultRootDir

	// Diagnostic log defaults
	cfg.Log.Level = constants.LogLevelWarn
	cfg.Log.Format = constants.LogFormatText
	cfg.Log.Output = constants.LogOutputStderr

	// Job logger defaults
	cfg.Logger.Name = constants.DefaultScriptName
	cfg.Logger.Level = logger.INFO.String()
	cfg.Logger.Console = true
	cfg.Logger.Color = true

	// Retention defaults
	cfg.Retention.LogDeletions = true

	return nil
}

// GetDefaultConfig returns a fully initialized default configuration
func GetDefaultConfig() *schema.Root {
	cfg := &schema.Root{}
	source := NewDefaultSource()
	_ = source.LoadInto(cfg)
	return cfg
}
