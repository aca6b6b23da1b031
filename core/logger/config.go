package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level to log (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the output encoding (json, console).
	Format string `mapstructure:"format" default:"json"`
	// File is an optional path; when set, logs are also written there with rotation.
	File string `mapstructure:"file" default:""`
	// MaxSizeMB is the size at which the log file is rotated.
	MaxSizeMB int `mapstructure:"max_size_mb" default:"100"`
}
