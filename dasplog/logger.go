package dasplog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin, named wrapper around *zap.SugaredLogger. The dasp
// packages take a Logger rather than reaching for a package-level global,
// so a pipeline run's logs can be correlated with its run id.
type Logger struct {
	sugar *zap.SugaredLogger
	level Level
}

// NewLogger builds a development-mode, console-encoded logger at the given
// minimum level. Production callers that already run zap elsewhere should
// use NewFromZap instead.
func NewLogger(name string, min Level) *Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(toZap(min))
	z, err := cfg.Build()
	if err != nil {
		// zap.NewDevelopmentConfig().Build() only fails on a broken sink
		// configuration, which cannot happen with the stock config.
		panic(err)
	}
	return NewFromZap(z, name, min)
}

// NewFromZap wraps an existing *zap.Logger, naming it and recording the
// minimum level so callers can skip expensive argument construction.
func NewFromZap(z *zap.Logger, name string, min Level) *Logger {
	return &Logger{sugar: z.Named(name).Sugar(), level: min}
}

func toZap(l Level) zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Enabled reports whether a message at the given level would be emitted.
func (l *Logger) Enabled(level Level) bool { return level >= l.level }

// Debugw logs a debug message with structured key/value pairs.
func (l *Logger) Debugw(msg string, kv ...interface{}) {
	if l == nil {
		return
	}
	l.sugar.Debugw(msg, kv...)
}

// Infow logs an info message with structured key/value pairs.
func (l *Logger) Infow(msg string, kv ...interface{}) {
	if l == nil {
		return
	}
	l.sugar.Infow(msg, kv...)
}

// Warnw logs a warning message with structured key/value pairs.
func (l *Logger) Warnw(msg string, kv ...interface{}) {
	if l == nil {
		return
	}
	l.sugar.Warnw(msg, kv...)
}

// Errorw logs an error message with structured key/value pairs.
func (l *Logger) Errorw(msg string, kv ...interface{}) {
	if l == nil {
		return
	}
	l.sugar.Errorw(msg, kv...)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	if l == nil {
		return nil
	}
	return l.sugar.Sync()
}
