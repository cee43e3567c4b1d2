package logger

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	DefaultLevel string         `yaml:"default_level" mapstructure:"defaultlevel"` // default log level for all modules
	Timezone     string         `yaml:"timezone" mapstructure:"timezone"`          // "Local", "UTC", or IANA timezone name
	Console      *ConsoleOutput `yaml:"console" mapstructure:"console"`            // console output configuration
	FileOutput   *FileOutput    `yaml:"file_output" mapstructure:"fileoutput"`     // file output configuration
}

// ConsoleOutput represents console logging configuration.
// Console output is human-readable text on stderr so stdout stays clean.
type ConsoleOutput struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Level   string `yaml:"level" mapstructure:"level"`
}

// FileOutput represents file logging configuration.
// File output uses JSON format for machine parsing.
type FileOutput struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
	Level   string `yaml:"level" mapstructure:"level"`
}

// Default values for logging configuration.
const (
	DefaultLogLevel       = "info"
	DefaultConsoleEnabled = true
)

// applyConfigDefaults fills in nil sections so a zero config still logs to the console.
func applyConfigDefaults(cfg *LoggingConfig) {
	if cfg == nil {
		return
	}

	if cfg.DefaultLevel == "" {
		cfg.DefaultLevel = DefaultLogLevel
	}

	if cfg.Console == nil {
		cfg.Console = &ConsoleOutput{
			Enabled: DefaultConsoleEnabled,
			Level:   cfg.DefaultLevel,
		}
	}
	if cfg.Console.Level == "" {
		cfg.Console.Level = cfg.DefaultLevel
	}

	if cfg.FileOutput != nil && cfg.FileOutput.Level == "" {
		cfg.FileOutput.Level = cfg.DefaultLevel
	}
}
