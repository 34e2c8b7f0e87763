package source

import (
	"os"
	"strconv"

	"cb9-core/internal/config/schema"
)

// EnvSource loads configuration from environment variables
type EnvSource struct {
	prefix string
}

// NewEnvSource creates a new EnvSource with the specified prefix
func NewEnvSource(prefix string) *EnvSource {
	return &EnvSource{
		prefix: prefix,
	}
}

// Name returns the source name
func (s *EnvSource) Name() string {
	return "env"
}

// Priority returns the source priority
func (s *EnvSource) Priority() int {
	return PriorityEnv
}

// LoadInto loads environment variables into the config structure
func (s *EnvSource) LoadInto(cfg *schema.Root) error {
	// Paths
	s.loadString("PATHS_ROOT", &cfg.Paths.Root)
	s.loadString("PATHS_LOGS", &cfg.Paths.Logs)
	s.loadString("PATHS_TEMP", &cfg.Paths.Temp)

	// Diagnostic log
	s.loadString("LOG_LEVEL", &cfg.Log.Level)
	s.loadString("LOG_FORMAT", &cfg.Log.Format)
	s.loadString("LOG_OUTPUT", &cfg.Log.Output)
	s.loadString("LOG_FILE", &cfg.Log.File)

	// Job logger
	s.loadString("LOGGER_NAME", &cfg.Logger.Name)
	s.loadString("LOGGER_LEVEL", &cfg.Logger.Level)
	s.loadString("LOGGER_FILE", &cfg.Logger.File)
	s.loadBool("LOGGER_CONSOLE", &cfg.Logger.Console)
	s.loadBool("LOGGER_COLOR", &cfg.Logger.Color)

	// Retention
	s.loadBool("RETENTION_LOG_DELETIONS", &cfg.Retention.LogDeletions)

	return nil
}

// getEnv gets environment variable with the configured prefix
func (s *EnvSource) getEnv(key string) (string, bool) {
	prefixedKey := s.prefix + "_" + key
	if v := os.Getenv(prefixedKey); v != "" {
		return v, true
	}
	return "", false
}

func (s *EnvSource) loadString(key string, target *string) {
	if v, ok := s.getEnv(key); ok {
		*target = v
	}
}

func (s *EnvSource) loadBool(key string, target *bool) {
	if v, ok := s.getEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*target = b
		}
	}
}
