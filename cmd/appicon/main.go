// Command appicon renders the iOS app icon set from one source image.
//
// Usage:
//
//	appicon [--input assets/app_icon.png] [--output ios/Runner/Assets.xcassets/AppIcon.appiconset]
//	        [--resampler lanczos|imaging|catmullrom] [--manifest] [--watch]
//
// Settings are also read from appicon.yaml (and its .local / per-environment
// variants) in --config-dir, and from APPICON_* environment variables. --env
// picks the per-environment file and overrides APPICON_ENV.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/leeforge/appicon/config"
	"github.com/leeforge/appicon/env_mode"
	apperrors "github.com/leeforge/appicon/errors"
	"github.com/leeforge/appicon/icongen"
	"github.com/leeforge/appicon/logging"
	"github.com/leeforge/appicon/media/processor"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	exitOK      = 0
	exitFatal   = 1
	exitPartial = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func newFlagSet(stderr io.Writer) *pflag.FlagSet {
	def := config.DefaultApp()

	flags := pflag.NewFlagSet("appicon", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringP("input", "i", def.Input, "source image")
	flags.StringP("output", "o", def.Output, "icon set directory, created when missing")
	flags.String("resampler", def.Resampler, "interpolation filter: lanczos, imaging or catmullrom")
	flags.Bool("manifest", def.Manifest, "write Contents.json next to the icons")
	flags.BoolP("watch", "w", def.Watch, "regenerate whenever the source image changes")
	flags.String("log-level", def.Log.Level, "log level: debug, info, warn, error")
	flags.String("log-format", def.Log.Format, "log format: console or json")
	flags.Bool("log-file", def.Log.File, "also write rotated log files")
	flags.String("config-dir", "", "directory holding appicon.yaml (default $"+config.ConfigPathEnv+" or .)")
	flags.String("env", "", "config environment: development, production or test (default $"+env_mode.ENV_MODE_KEY+")")
	return flags
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := newFlagSet(stderr)
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return exitOK
		}
		fmt.Fprintf(stderr, "appicon: %v\nUsage of appicon:\n", err)
		flags.PrintDefaults()
		return exitFatal
	}

	if env, _ := flags.GetString("env"); env != "" {
		env_mode.SetMode(env_mode.ParseEnv(env))
	}

	opts := config.DefaultConfigOptions()
	opts.Flags = flags
	if dir, _ := flags.GetString("config-dir"); dir != "" {
		opts.BasePath = dir
	}

	app, cfg, err := config.LoadApp(opts)
	if err != nil {
		fmt.Fprintf(stderr, "appicon: %v\n", err)
		return exitFatal
	}

	logger := logging.Init(app.Log)
	defer func() {
		_ = logger.Sync()
		_ = logging.CloseAllWriters()
	}()

	log := logger.Named("appicon").With(zap.String("run_id", uuid.NewString()))
	log.Debug("configuration loaded", zap.Strings("files", cfg.Files()), zap.String("resampler", app.Resampler))

	resampler, err := processor.NewResampler(app.Resampler)
	if err != nil {
		log.Error("invalid resampler", zap.Error(err))
		return exitFatal
	}

	gen := icongen.New(
		icongen.WithResampler(resampler),
		icongen.WithLogger(log),
		icongen.WithReporter(icongen.NewConsoleReporter(stdout)),
		icongen.WithManifest(app.Manifest),
	)

	report, err := gen.Generate(ctx, app.Input, app.Output)
	code := exitCode(report, err)

	if !app.Watch || apperrors.TypeOf(err) == apperrors.ErrorTypeDirectory || ctx.Err() != nil {
		return code
	}

	if err := gen.Watch(ctx, app.Input, app.Output, icongen.DefaultDebounce, func(r *icongen.Report, err error) {
		if ctx.Err() == nil {
			code = exitCode(r, err)
		}
	}); err != nil {
		log.WithError(err).Error("watch failed")
		return exitFatal
	}
	return code
}

func exitCode(report *icongen.Report, err error) int {
	switch {
	case err != nil:
		return exitFatal
	case report.Err() != nil:
		return exitPartial
	default:
		return exitOK
	}
}
