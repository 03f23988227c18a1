// Package logger holds the process logger. Packages log through the helpers
// below; before Init they write nowhere, which keeps tests quiet.
package logger

import (
	"fmt"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global = zap.NewNop()

// Init builds the logger. format "console" gives colored human output, anything
// else JSON. Calling it again replaces the previous logger.
func Init(level, format string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	global = l
	return nil
}

// L returns the process logger.
func L() *zap.Logger { return global }

// Std bridges to *log.Logger at level; gorm's logger writes here.
func Std(level zapcore.Level) *log.Logger {
	std, err := zap.NewStdLogAt(global.WithOptions(zap.AddCallerSkip(-1)), level)
	if err != nil {
		return zap.NewStdLog(global)
	}
	return std
}

func Debug(msg string, fields ...zap.Field) { global.Debug(msg, fields...) }

func Info(msg string, fields ...zap.Field) { global.Info(msg, fields...) }

func Warn(msg string, fields ...zap.Field) { global.Warn(msg, fields...) }

func Error(msg string, fields ...zap.Field) { global.Error(msg, fields...) }

// Sync flushes buffered entries.
func Sync() error { return global.Sync() }
