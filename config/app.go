package config

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/leeforge/appicon/logging"
)

// App is the configuration of the appicon command.
type App struct {
	// Input is the source image.
	Input string `mapstructure:"input" json:"input" yaml:"input" default:"assets/app_icon.png" validate:"required"`
	// Output is the icon set directory; created when missing.
	Output string `mapstructure:"output" json:"output" yaml:"output" default:"ios/Runner/Assets.xcassets/AppIcon.appiconset" validate:"required"`
	// Resampler selects the interpolation filter.
	Resampler string `mapstructure:"resampler" json:"resampler" yaml:"resampler" default:"lanczos" validate:"oneof=lanczos imaging catmullrom"`
	// Manifest writes Contents.json next to the icons.
	Manifest bool `mapstructure:"manifest" json:"manifest" yaml:"manifest"`
	// Watch regenerates whenever the source image changes.
	Watch bool `mapstructure:"watch" json:"watch" yaml:"watch"`

	Log logging.Config `mapstructure:"log" json:"log" yaml:"log"`
}

// DefaultApp returns an App populated from its default tags.
func DefaultApp() App {
	var app App
	if err := defaults.Set(&app); err != nil {
		panic(fmt.Sprintf("config: invalid default tags: %v", err))
	}
	return app
}

// Validate rejects an output directory that is the input file itself.
func (a *App) Validate() error {
	if a.Input == a.Output {
		return fmt.Errorf("input and output must differ: %s", a.Input)
	}
	return nil
}

// LoadApp reads layered files, environment and flags into an App.
func LoadApp(opts ConfigOptions) (*App, *Config, error) {
	cfg, err := NewConfig(opts)
	if err != nil {
		return nil, nil, err
	}

	app := &App{}
	if err := cfg.BindWithDefaults(app); err != nil {
		return nil, nil, err
	}
	return app, cfg, nil
}
