package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/leeforge/appicon/env_mode"
	"github.com/leeforge/appicon/utils"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const ConfigPathEnv = "APPICON_CONFIG_PATH"

func DefaultConfigOptions() ConfigOptions {
	basePath := os.Getenv(ConfigPathEnv)
	if basePath == "" {
		basePath = "."
	}

	return ConfigOptions{
		BasePath:  basePath,
		FileName:  "appicon",
		FileType:  "yaml",
		EnvPrefix: "APPICON",
	}
}

// NewConfig reads every layered config file that exists under
// opts.BasePath. Having no file at all is not an error.
func NewConfig(optsArr ...ConfigOptions) (*Config, error) {
	opts := DefaultConfigOptions()
	if len(optsArr) > 0 {
		opts = optsArr[0]
	}

	instance, files, err := CreateConfig(opts)
	if err != nil {
		return nil, err
	}

	return &Config{
		instance: instance,
		opts:     opts,
		files:    files,
	}, nil
}

// Bind unmarshals the merged configuration into instance, which must be a
// pointer to a struct.
func (c *Config) Bind(instance any) error {
	if c == nil || c.instance == nil {
		return fmt.Errorf("config instance is nil")
	}
	if instance == nil {
		return fmt.Errorf("target instance is nil")
	}

	bindEnvKeys(c.instance, reflect.TypeOf(instance), "")

	if err := c.instance.Unmarshal(instance); err != nil {
		return fmt.Errorf("failed to unmarshal config (path: %s, file: %s.%s): %w",
			c.opts.BasePath, c.opts.FileName, c.opts.FileType, err)
	}
	return nil
}

// BindWithDefaults fills `default` tags, binds, then validates with
// `validate` tags and the Validator interface.
func (c *Config) BindWithDefaults(instance any) error {
	if err := defaults.Set(instance); err != nil {
		return fmt.Errorf("failed to set defaults: %w", err)
	}

	if err := c.Bind(instance); err != nil {
		return err
	}

	return Validate(instance)
}

// Validate checks instance against its `validate` struct tags.
func Validate(instance any) error {
	if err := validator.New().Struct(instance); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if v, ok := instance.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}
	return nil
}

// Files returns the config files that were read, in merge order.
func (c *Config) Files() []string {
	return c.files
}

func CreateConfig(opts ConfigOptions) (*viper.Viper, []string, error) {
	v := viper.New()
	v.SetConfigType(opts.FileType)

	configPaths := getConfigFilePaths(opts)
	for _, configPath := range configPaths {
		tempV := viper.New()
		tempV.SetConfigFile(configPath)
		if err := tempV.ReadInConfig(); err != nil {
			return nil, nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
		if err := v.MergeConfigMap(tempV.AllSettings()); err != nil {
			return nil, nil, fmt.Errorf("error merging config file %s: %w", configPath, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	if opts.EnvPrefix != "" {
		v.SetEnvPrefix(opts.EnvPrefix)
	}
	v.AutomaticEnv()

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, nil, err
		}
	}

	return v, configPaths, nil
}

// locatorFlags choose which files are read; they are not settings.
var locatorFlags = map[string]struct{}{
	"config-dir": {},
	"env":        {},
}

// bindFlags binds each flag under its name, with "log-" flags mapped into
// the "log." section.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if bindErr != nil {
			return
		}
		if _, skip := locatorFlags[f.Name]; skip {
			return
		}
		key := f.Name
		if strings.HasPrefix(key, "log-") {
			key = "log." + strings.TrimPrefix(key, "log-")
		}
		if err := v.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

// bindEnvKeys registers every mapstructure key of t with viper so
// AutomaticEnv can see keys that no file or flag mentions.
func bindEnvKeys(v *viper.Viper, t reflect.Type, prefix string) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := strings.Split(field.Tag.Get("mapstructure"), ",")[0]
		if tag == "" || tag == "-" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if field.Type.Kind() == reflect.Struct {
			bindEnvKeys(v, field.Type, key)
			continue
		}
		_ = v.BindEnv(key)
	}
}

func getConfigFilePaths(opts ConfigOptions) (configFiles []string) {
	env := env_mode.Mode()
	fileNames := []string{
		opts.FileName,
		fmt.Sprintf("%s.local", opts.FileName),
	}

	switch env {
	case env_mode.DevMode:
		fileNames = append(fileNames,
			fmt.Sprintf("%s.dev", opts.FileName),
			fmt.Sprintf("%s.dev.local", opts.FileName),
		)
	case env_mode.ProMode:
		fileNames = append(fileNames,
			fmt.Sprintf("%s.prod", opts.FileName),
			fmt.Sprintf("%s.prod.local", opts.FileName),
		)
	case env_mode.TestMode:
		fileNames = append(fileNames,
			fmt.Sprintf("%s.test", opts.FileName),
			fmt.Sprintf("%s.test.local", opts.FileName),
		)
	}

	for _, fileName := range fileNames {
		file := filepath.Join(opts.BasePath, fmt.Sprintf("%s.%s", fileName, opts.FileType))
		if isDir, exists, _ := utils.Exists(file); exists && !isDir {
			configFiles = append(configFiles, file)
		}
	}

	return configFiles
}
