package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Validator is implemented by config structs that need checks beyond
// struct tags.
type Validator interface {
	Validate() error
}

type Config struct {
	instance *viper.Viper
	opts     ConfigOptions
	files    []string
}

type ConfigOptions struct {
	// BasePath is the directory searched for config files.
	BasePath string
	// FileName is the base name, without extension.
	FileName string
	FileType string
	// EnvPrefix is prepended to environment variable names.
	EnvPrefix string
	// Flags are bound on top of files and environment. Only flags the
	// user actually set override other sources.
	Flags *pflag.FlagSet
}
