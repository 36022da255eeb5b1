package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Field is a typed log field.
type Field = zap.Field

var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Bool     = zap.Bool
	Any      = zap.Any
	Duration = zap.Duration
	Strings  = zap.Strings
	Error    = zap.Error
)

// LoggerI is the logging surface used across the service.
type LoggerI interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Panic(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)
	Sync() error
}

type loggerImpl struct {
	zap *zap.Logger
}

// NewLogger returns a JSON logger writing to stdout, named after the service.
func NewLogger(namespace string, level string) LoggerI {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.Lock(os.Stdout),
		zap.NewAtomicLevelAt(parseLevel(level)),
	)
	return &loggerImpl{zap: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Named(namespace)}
}

// NewNop returns a logger that discards everything.
func NewNop() LoggerI {
	return &loggerImpl{zap: zap.NewNop()}
}

// NewFromZap wraps an existing zap logger.
func NewFromZap(l *zap.Logger) LoggerI {
	return &loggerImpl{zap: l}
}

// GetNamed returns a child logger with name appended.
func GetNamed(l LoggerI, name string) LoggerI {
	if impl, ok := l.(*loggerImpl); ok {
		return &loggerImpl{zap: impl.zap.Named(name)}
	}
	return l
}

// WithFields returns a child logger that always carries fields.
func WithFields(l LoggerI, fields ...Field) LoggerI {
	if impl, ok := l.(*loggerImpl); ok {
		return &loggerImpl{zap: impl.zap.With(fields...)}
	}
	return l
}

// Cleanup flushes buffered entries.
func Cleanup(l LoggerI) error {
	return l.Sync()
}

func parseLevel(level string) zapcore.Level {
	switch level {
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

func (l *loggerImpl) Debug(msg string, fields ...Field) { l.zap.Debug(msg, fields...) }
func (l *loggerImpl) Info(msg string, fields ...Field)  { l.zap.Info(msg, fields...) }
func (l *loggerImpl) Warn(msg string, fields ...Field)  { l.zap.Warn(msg, fields...) }
func (l *loggerImpl) Error(msg string, fields ...Field) { l.zap.Error(msg, fields...) }
func (l *loggerImpl) Panic(msg string, fields ...Field) { l.zap.Panic(msg, fields...) }
func (l *loggerImpl) Fatal(msg string, fields ...Field) { l.zap.Fatal(msg, fields...) }
func (l *loggerImpl) Sync() error                       { return l.zap.Sync() }
