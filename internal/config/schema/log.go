package schema

// LogConfig contains diagnostic logging configuration (logrus)
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`   // debug/info/warn/error
	Format string `yaml:"format" json:"format"` // text/json
	Output string `yaml:"output" json:"output"` // stdout/stderr/file
	File   string `yaml:"file" json:"file"`     // log file path when output is file
}

// LoggerConfig contains the job logger configuration
type LoggerConfig struct {
	Name    string `yaml:"name" json:"name"`       // name shown in every line
	Level   string `yaml:"level" json:"level"`     // DEBUG/INFO/WARNING/ERROR/CRITICAL
	File    string `yaml:"file" json:"file"`       // optional file sink
	Console bool   `yaml:"console" json:"console"` // echo to stdout
	Color   bool   `yaml:"color" json:"color"`     // color the level label on the console
}
