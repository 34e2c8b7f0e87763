package source

import (
	"cb9-core/internal/config/schema"
)

// CLISource applies command-line flag overrides
// Only flags the user actually set should be applied by fn
type CLISource struct {
	apply func(cfg *schema.Root)
}

// NewCLISource creates a new CLISource
func NewCLISource(apply func(cfg *schema.Root)) *CLISource {
	return &CLISource{apply: apply}
}

// Name returns the source name
func (s *CLISource) Name() string {
	return "cli"
}

// Priority returns the source priority
func (s *CLISource) Priority() int {
	return PriorityCLI
}

// LoadInto applies the overrides
func (s *CLISource) LoadInto(cfg *schema.Root) error {
	if s.apply != nil {
		s.apply(cfg)
	}
	return nil
}
