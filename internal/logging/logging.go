// Package logging builds the zap logger used for diagnostics.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger.
type Options struct {
	// Debug lowers the console level from warn to debug.
	Debug bool
	// Console receives human-readable output. Defaults to os.Stderr.
	Console io.Writer
	// File, if set, additionally receives JSON lines at debug level, rotated by size.
	File string
	// MaxSizeMB is the rotation threshold of File.
	MaxSizeMB int
	// MaxBackups is the number of rotated files kept.
	MaxBackups int
}

// New builds a logger from opt. The returned function flushes and closes it.
func New(opt Options) (*zap.Logger, func()) {
	console := opt.Console
	if console == nil {
		console = os.Stderr
	}

	level := zapcore.WarnLevel
	if opt.Debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(console), level),
	}

	var rotator *lumberjack.Logger

	if opt.File != "" {
		rotator = &lumberjack.Logger{
			Filename:   opt.File,
			MaxSize:    max(opt.MaxSizeMB, 1),
			MaxBackups: opt.MaxBackups,
		}

		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotator),
			zapcore.DebugLevel,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...))

	return logger, func() {
		_ = logger.Sync()

		if rotator != nil {
			_ = rotator.Close()
		}
	}
}
