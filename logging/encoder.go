package logging

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CusTimeEncoder creates a time encoder that adds the prefix and formats the time.
func CusTimeEncoder(config Config) zapcore.TimeEncoder {
	return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(config.Prefix + t.Format(config.TimeFormat))
	}
}

// GetEncoder returns a zapcore.Encoder based on the config format.
func GetEncoder(config Config) zapcore.Encoder {
	encoderConfig := getEncoderConfig(config)
	if config.Format == "json" {
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func getEncoderConfig(config Config) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     config.MessageKey,
		LevelKey:       config.LevelKey,
		TimeKey:        config.TimeKey,
		NameKey:        config.NameKey,
		CallerKey:      config.CallerKey,
		StacktraceKey:  config.StacktraceKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    config.ZapEncodeLevel(),
		EncodeTime:     CusTimeEncoder(config),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
}

// fileEncoder never colours levels; escape codes do not belong in files.
func fileEncoder(config Config) zapcore.Encoder {
	encoderConfig := getEncoderConfig(config)
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if config.Format == "json" {
		encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}

// getLevelPriority returns a LevelEnabler that only enables the exact level.
func getLevelPriority(level zapcore.Level) zap.LevelEnablerFunc {
	return func(l zapcore.Level) bool {
		return l == level
	}
}

// getZapCores builds one terminal core for every level >= config.Level and,
// when files are enabled, one file core per level writing <level>.log.
func getZapCores(config Config) []zapcore.Core {
	minLevel := config.TransportLevel()
	cores := make([]zapcore.Core, 0, 8)

	if config.LogInTerminal {
		cores = append(cores, zapcore.NewCore(
			GetEncoder(config),
			zapcore.Lock(zapcore.AddSync(os.Stderr)),
			zap.NewAtomicLevelAt(minLevel),
		))
	}

	if config.File {
		for level := minLevel; level <= zapcore.FatalLevel; level++ {
			cores = append(cores, zapcore.NewCore(
				fileEncoder(config),
				getWriteSyncerWithRegistry(config, level.String()),
				getLevelPriority(level),
			))
		}
	}

	if len(cores) == 0 {
		cores = append(cores, zapcore.NewNopCore())
	}
	return cores
}
