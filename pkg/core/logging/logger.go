// ============================================================================
// throwables - Scarpet Exception Taxonomy
// ============================================================================
//
// Package:     logging
// Description: Key/value logger backed by zap
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents log severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel converts a level name to a Level. Unknown names map to LevelInfo.
func ParseLevel(level string) Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error", "fatal":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name, emitted as the logger name
	ServiceName string

	// Log level (debug, info, warn, error)
	Level string

	// Output format: "json" or "console" ("text" is accepted as console)
	Format string

	// Primary output; nil means stderr
	Output io.Writer

	// Additional outputs besides the primary one
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "json",
	}
}

// Logger is a key/value logger. The zero value is not usable; use New,
// NewLogger or NewNop.
type Logger struct {
	cfg    LoggerConfig
	name   string
	fields []interface{}
	nop    bool
	sugar  *zap.SugaredLogger
}

// New creates a logger with the default configuration
func New(name string) *Logger {
	return NewLogger(DefaultLoggerConfig(name))
}

// NewNop returns a logger that discards everything
func NewNop() *Logger {
	return &Logger{name: "nop", nop: true, sugar: zap.NewNop().Sugar()}
}

// NewLogger creates a zap-backed logger from cfg
func NewLogger(cfg LoggerConfig) *Logger {
	l := &Logger{cfg: cfg, name: cfg.ServiceName}
	l.sugar = build(cfg, ParseLevel(cfg.Level))
	return l
}

func build(cfg LoggerConfig, level Level) *zap.SugaredLogger {
	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}

	syncers := []zapcore.WriteSyncer{zapcore.AddSync(output)}
	for _, w := range cfg.AdditionalOutputs {
		syncers = append(syncers, zapcore.AddSync(w))
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeDuration = zapcore.StringDurationEncoder

	var encoder zapcore.Encoder
	switch strings.ToLower(cfg.Format) {
	case "console", "text":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	default:
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(syncers...), zap.NewAtomicLevelAt(level.zapLevel()))
	zl := zap.New(core)
	if cfg.ServiceName != "" {
		zl = zl.Named(cfg.ServiceName)
	}
	return zl.Sugar()
}

// WithLevel returns a new logger with the specified minimum level
func (l *Logger) WithLevel(level Level) *Logger {
	if l.nop {
		return l
	}
	clone := &Logger{cfg: l.cfg, name: l.name, fields: append([]interface{}(nil), l.fields...)}
	clone.sugar = build(l.cfg, level).With(clone.fields...)
	return clone
}

// With returns a logger that adds the key/value pairs to every entry
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{
		cfg:    l.cfg,
		name:   l.name,
		nop:    l.nop,
		fields: append(append([]interface{}(nil), l.fields...), keysAndValues...),
		sugar:  l.sugar.With(keysAndValues...),
	}
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, keysAndValues...)
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, keysAndValues...)
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

// Zap exposes the underlying zap logger
func (l *Logger) Zap() *zap.Logger {
	return l.sugar.Desugar()
}
