// Package schema defines configuration structure types
package schema

import (
	"path/filepath"

	"cb9-core/internal/constants"
)

// Root is the top-level configuration structure
type Root struct {
	Paths     PathsConfig     `yaml:"paths" json:"paths"`
	Log       LogConfig       `yaml:"log" json:"log"`
	Logger    LoggerConfig    `yaml:"logger" json:"logger"`
	Retention RetentionConfig `yaml:"retention" json:"retention"`
}

// PathsConfig contains the working directories
type PathsConfig struct {
	Root string `yaml:"root" json:"root"` // base directory, e.g. ~/Documents/script
	Logs string `yaml:"logs" json:"logs"` // empty = <root>/logs
	Temp string `yaml:"temp" json:"temp"` // empty = <root>/temp
}

// LogDir returns the job log directory
func (p PathsConfig) LogDir() string {
	return p.resolve(p.Logs, constants.LogDirName)
}

// TempDir returns the temp directory
func (p PathsConfig) TempDir() string {
	return p.resolve(p.Temp, constants.TempDirName)
}

// resolve: empty -> <root>/<name>; relative -> under root
func (p PathsConfig) resolve(dir, name string) string {
	if dir == "" {
		return filepath.Join(p.Root, name)
	}
	if filepath.IsAbs(dir) || dir[0] == '~' || dir[0] == '$' {
		return dir
	}
	return filepath.Join(p.Root, dir)
}

// RetentionConfig contains cleanup settings
type RetentionConfig struct {
	LogDeletions bool         `yaml:"log_deletions" json:"log_deletions"`
	Tasks        []TaskConfig `yaml:"tasks" json:"tasks"`
}

// TaskConfig is a named, reusable retention task
type TaskConfig struct {
	Name     string   `yaml:"name" json:"name"`
	Root     string   `yaml:"root" json:"root"`
	Patterns []string `yaml:"patterns" json:"patterns"`
	DryRun   bool     `yaml:"dry_run" json:"dry_run"`
}

// FindTask returns the task with the given name
func (r RetentionConfig) FindTask(name string) (TaskConfig, bool) {
	for _, t := range r.Tasks {
		if t.Name == name {
			return t, true
		}
	}
	return TaskConfig{}, false
}
