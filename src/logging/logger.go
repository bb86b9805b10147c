// Package logging provides the process wide leveled logger used by the
// engine, the renderer and the viewer binaries.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents severity.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

func (l LogLevel) zapLevel() zapcore.Level {
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

// Options configures the logger sinks.
type Options struct {
	Level string
	// File enables a rotating log file next to stderr output.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	mu          sync.Mutex
	atomicLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base        = newSugared(zapcore.AddSync(os.Stderr))
	fileSink    *lumberjack.Logger
)

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05.000000")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.CallerKey = ""
	return cfg
}

func newSugared(ws zapcore.WriteSyncer) *zap.SugaredLogger {
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), ws, atomicLevel)
	return zap.New(core).Sugar()
}

// Configure installs the level and sinks described by opts. It may be called
// more than once; a previous log file is closed.
func Configure(opts Options) error {
	mu.Lock()
	defer mu.Unlock()
	if opts.Level != "" {
		setLevelLocked(opts.Level)
	}
	if fileSink != nil {
		_ = fileSink.Close()
		fileSink = nil
	}
	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stderr)}
	if opts.File != "" {
		fileSink = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 25),
			MaxBackups: orDefault(opts.MaxBackups, 5),
			MaxAge:     orDefault(opts.MaxAgeDays, 14),
			Compress:   true,
		}
		sinks = append(sinks, zapcore.AddSync(fileSink))
	}
	base = newSugared(zapcore.NewMultiWriteSyncer(sinks...))
	return nil
}

// SetOutput redirects all log output to w. Used by tests and the headless mode.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base = newSugared(zapcore.AddSync(w))
}

// SetLogLevel parses and sets the global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	mu.Lock()
	defer mu.Unlock()
	setLevelLocked(s)
}

func setLevelLocked(s string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	atomicLevel.SetLevel(l.zapLevel())
}

// GetLogLevel returns the current global log level.
func GetLogLevel() LogLevel {
	switch atomicLevel.Level() {
	case zapcore.DebugLevel:
		return LevelDebug
	case zapcore.WarnLevel:
		return LevelWarn
	case zapcore.InfoLevel:
		return LevelInfo
	default:
		return LevelError
	}
}

// Sync flushes buffered output.
func Sync() {
	mu.Lock()
	l := base
	mu.Unlock()
	_ = l.Sync()
}

func logger() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	return base
}

func logf(l LogLevel, format string, args ...interface{}) {
	if !atomicLevel.Enabled(l.zapLevel()) {
		return
	}
	// Only format when there are args so literal % in preformatted messages
	// survives untouched.
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	lg := logger()
	switch l {
	case LevelDebug:
		lg.Debug(msg)
	case LevelWarn:
		lg.Warn(msg)
	case LevelError:
		lg.Error(msg)
	default:
		lg.Info(msg)
	}
}

// Public helpers
func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack logs how long a phase took at debug level.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
