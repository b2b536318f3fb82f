package logging

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// Config represents the logger configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error, fatal).
	Level string `mapstructure:"level" json:"level" yaml:"level" default:"info" validate:"oneof=debug info warn error dpanic panic fatal"`

	// Format is the log format (json or console).
	Format string `mapstructure:"format" json:"format" yaml:"format" default:"console" validate:"oneof=json console"`

	// EncodeLevel selects the level encoder. "auto" colours levels only when
	// stderr is a terminal.
	EncodeLevel string `mapstructure:"encode-level" json:"encodeLevel" yaml:"encode-level" default:"auto"`

	// Prefix is prepended to every timestamp.
	Prefix string `mapstructure:"prefix" json:"prefix" yaml:"prefix"`

	// TimeFormat uses Go time layout.
	TimeFormat string `mapstructure:"time-format" json:"timeFormat" yaml:"time-format" default:"2006/01/02 - 15:04:05"`

	// LogInTerminal writes log entries to stderr.
	LogInTerminal bool `mapstructure:"log-in-terminal" json:"logInTerminal" yaml:"log-in-terminal" default:"true"`

	// File enables rotated log files under Director.
	File bool `mapstructure:"file" json:"file" yaml:"file"`

	// Director is the directory where log files are stored, one
	// subdirectory per day.
	Director string `mapstructure:"director" json:"director" yaml:"director" default:"logs"`

	// MaxAge is the maximum number of days to retain old log files.
	MaxAge int `mapstructure:"max-age" json:"maxAge" yaml:"max-age" default:"7"`

	// MaxSize is the size in megabytes at which a log file is rotated.
	MaxSize int `mapstructure:"max-size" json:"maxSize" yaml:"max-size" default:"100"`

	// MaxBackups is the maximum number of rotated files to retain.
	MaxBackups int `mapstructure:"max-backups" json:"maxBackups" yaml:"max-backups" default:"10"`

	// Compress gzips rotated files.
	Compress bool `mapstructure:"compress" json:"compress" yaml:"compress" default:"true"`

	// ShowLineNumber adds caller information to entries.
	ShowLineNumber bool `mapstructure:"show-line-number" json:"showLineNumber" yaml:"show-line-number"`

	MessageKey    string `mapstructure:"message-key" json:"messageKey" yaml:"message-key"`
	LevelKey      string `mapstructure:"level-key" json:"levelKey" yaml:"level-key"`
	TimeKey       string `mapstructure:"time-key" json:"timeKey" yaml:"time-key"`
	NameKey       string `mapstructure:"name-key" json:"nameKey" yaml:"name-key"`
	CallerKey     string `mapstructure:"caller-key" json:"callerKey" yaml:"caller-key"`
	StacktraceKey string `mapstructure:"stacktrace-key" json:"stacktraceKey" yaml:"stacktrace-key"`
}

// DefaultConfig returns a Config with sensible defaults for a command line
// tool: console output on stderr, no log files.
func DefaultConfig() Config {
	return Config{
		Level:         "info",
		Format:        "console",
		EncodeLevel:   "auto",
		TimeFormat:    "2006/01/02 - 15:04:05",
		LogInTerminal: true,
		File:          false,
		Director:      "logs",
		MaxAge:        7,
		MaxSize:       100,
		MaxBackups:    10,
		Compress:      true,
		MessageKey:    "message",
		LevelKey:      "level",
		TimeKey:       "time",
		NameKey:       "logger",
		CallerKey:     "caller",
		StacktraceKey: "stacktrace",
	}
}

// TransportLevel converts the string level to zapcore.Level.
func (c Config) TransportLevel() zapcore.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "dpanic":
		return zapcore.DPanicLevel
	case "panic":
		return zapcore.PanicLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// ZapEncodeLevel returns the zapcore.LevelEncoder based on EncodeLevel.
func (c Config) ZapEncodeLevel() zapcore.LevelEncoder {
	switch c.EncodeLevel {
	case "LowercaseLevelEncoder":
		return zapcore.LowercaseLevelEncoder
	case "LowercaseColorLevelEncoder":
		return zapcore.LowercaseColorLevelEncoder
	case "CapitalLevelEncoder":
		return zapcore.CapitalLevelEncoder
	case "CapitalColorLevelEncoder":
		return zapcore.CapitalColorLevelEncoder
	case "auto":
		if c.Format == "console" && stderrIsTerminal() {
			return zapcore.CapitalColorLevelEncoder
		}
		return zapcore.CapitalLevelEncoder
	default:
		return zapcore.LowercaseLevelEncoder
	}
}

// applyDefaults applies default values to empty fields.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Level == "" {
		c.Level = defaults.Level
	}
	if c.Format == "" {
		c.Format = defaults.Format
	}
	if c.EncodeLevel == "" {
		c.EncodeLevel = defaults.EncodeLevel
	}
	if c.TimeFormat == "" {
		c.TimeFormat = defaults.TimeFormat
	}
	if c.Director == "" {
		c.Director = defaults.Director
	}
	if c.MaxAge == 0 {
		c.MaxAge = defaults.MaxAge
	}
	if c.MaxSize == 0 {
		c.MaxSize = defaults.MaxSize
	}
	if c.MaxBackups == 0 {
		c.MaxBackups = defaults.MaxBackups
	}
	if c.MessageKey == "" {
		c.MessageKey = defaults.MessageKey
	}
	if c.LevelKey == "" {
		c.LevelKey = defaults.LevelKey
	}
	if c.TimeKey == "" {
		c.TimeKey = defaults.TimeKey
	}
	if c.NameKey == "" {
		c.NameKey = defaults.NameKey
	}
	if c.CallerKey == "" {
		c.CallerKey = defaults.CallerKey
	}
	if c.StacktraceKey == "" {
		c.StacktraceKey = defaults.StacktraceKey
	}
}
