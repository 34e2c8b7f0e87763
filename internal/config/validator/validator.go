// Package validator provides configuration validation
package validator

import (
	"fmt"
	"path/filepath"
	"strings"

	"cb9-core/internal/config/schema"
	"cb9-core/internal/constants"
	"cb9-core/internal/utils/logger"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string // Field path (e.g., "retention.tasks[0].root")
	Value   string // Current value
	Message string // Error message
	Hint    string // Fix suggestion
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult contains all validation errors
type ValidationResult struct {
	Errors []ValidationError
}

// IsValid returns true if there are no validation errors
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Error returns a formatted error message
func (r *ValidationResult) Error() string {
	if r.IsValid() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Configuration validation failed:\n\n")

	for i, err := range r.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Field))
		if err.Value != "" {
			sb.WriteString(fmt.Sprintf("     Current value: %s\n", err.Value))
		}
		sb.WriteString(fmt.Sprintf("     Error: %s\n", err.Message))
		if err.Hint != "" {
			sb.WriteString(fmt.Sprintf("     Hint: %s\n", err.Hint))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// AddError adds a validation error
func (r *ValidationResult) AddError(field, value, message, hint string) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
		Hint:    hint,
	})
}

// Validator validates configuration
type Validator struct {
	rules []ValidationRule
}

// ValidationRule is a function that validates configuration
type ValidationRule func(cfg *schema.Root, result *ValidationResult)

// NewValidator creates a new Validator with default rules
func NewValidator() *Validator {
	v := &Validator{
		rules: make([]ValidationRule, 0),
	}

	v.AddRule(validatePaths)
	v.AddRule(validateLog)
	v.AddRule(validateLogger)
	v.AddRule(validateRetention)

	return v
}

// AddRule adds a validation rule
func (v *Validator) AddRule(rule ValidationRule) {
	v.rules = append(v.rules, rule)
}

// Validate validates the configuration
func (v *Validator) Validate(cfg *schema.Root) *ValidationResult {
	result := &ValidationResult{
		Errors: make([]ValidationError, 0),
	}

	for _, rule := range v.rules {
		rule(cfg, result)
	}

	return result
}

// ValidateConfig is a convenience function that creates a validator and validates
func ValidateConfig(cfg *schema.Root) *ValidationResult {
	return NewValidator().Validate(cfg)
}

// ============================================================================
// Validation Rules
// ============================================================================

func validatePaths(cfg *schema.Root, result *ValidationResult) {
	if strings.TrimSpace(cfg.Paths.Root) == "" {
		result.AddError("paths.root",
			"",
			"root directory is required",
			"Set paths.root or CB9_PATHS_ROOT, e.g., ~/Documents/script")
	}
}

func validateLog(cfg *schema.Root, result *ValidationResult) {
	validateLogLevel("log.level", cfg.Log.Level, result)
	validateLogFormat("log.format", cfg.Log.Format, result)

	switch cfg.Log.Output {
	case "", constants.LogOutputStdout, constants.LogOutputStderr:
	case constants.LogOutputFile:
		if cfg.Log.File == "" {
			result.AddError("log.file",
				"",
				"file is required when output is file",
				"Set log.file to a writable path")
		}
	default:
		result.AddError("log.output",
			cfg.Log.Output,
			"invalid log output",
			"Use one of: stdout, stderr, file")
	}
}

func validateLogger(cfg *schema.Root, result *ValidationResult) {
	if cfg.Logger.Level != "" {
		if _, err := logger.ParseSeverity(cfg.Logger.Level); err != nil {
			result.AddError("logger.level",
				cfg.Logger.Level,
				"invalid severity",
				"Use one of: DEBUG, INFO, WARNING, ERROR, CRITICAL")
		}
	}
	if strings.TrimSpace(cfg.Logger.Name) == "" {
		result.AddError("logger.name",
			"",
			"logger name is required",
			"Set logger.name, it appears in every log line")
	}
}

func validateRetention(cfg *schema.Root, result *ValidationResult) {
	seen := make(map[string]bool, len(cfg.Retention.Tasks))

	for i, task := range cfg.Retention.Tasks {
		prefix := fmt.Sprintf("retention.tasks[%d]", i)

		if task.Name == "" {
			result.AddError(prefix+".name",
				"",
				"task name is required",
				"Give every task a unique name, used by `cb9 clean --task`")
		} else if seen[task.Name] {
			result.AddError(prefix+".name",
				task.Name,
				"duplicate task name",
				"Task names must be unique")
		}
		seen[task.Name] = true

		if task.Root == "" {
			result.AddError(prefix+".root",
				"",
				"task root is required",
				"Set the directory to clean")
		}

		if len(task.Patterns) == 0 {
			result.AddError(prefix+".patterns",
				"",
				"at least one pattern is required",
				"Use glob patterns such as *.tmp")
		}
		for j, pattern := range task.Patterns {
			if _, err := filepath.Match(pattern, ""); err != nil || pattern == "" {
				result.AddError(fmt.Sprintf("%s.patterns[%d]", prefix, j),
					pattern,
					"invalid glob pattern",
					"Check brackets and escapes, e.g., *.log or backup_[0-9]*")
			}
		}
	}
}

// ============================================================================
// Helpers
// ============================================================================

func validateLogLevel(field, level string, result *ValidationResult) {
	validLevels := map[string]bool{
		constants.LogLevelDebug: true,
		constants.LogLevelInfo:  true,
		constants.LogLevelWarn:  true,
		constants.LogLevelError: true,
	}
	if !validLevels[level] && level != "" {
		result.AddError(field,
			level,
			"invalid log level",
			"Use one of: debug, info, warn, error")
	}
}

func validateLogFormat(field, format string, result *ValidationResult) {
	validFormats := map[string]bool{
		constants.LogFormatText: true,
		constants.LogFormatJSON: true,
	}
	if !validFormats[format] && format != "" {
		result.AddError(field,
			format,
			"invalid log format",
			"Use one of: text, json")
	}
}
