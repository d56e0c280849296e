package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global = zap.NewNop()

// Init builds the process-wide logger.
// level: debug, info, warn, error
// format: json, console
func Init(level, format string) (*zap.Logger, error) {
	lvl := zap.InfoLevel
	if err := lvl.Set(strings.ToLower(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.MessageKey = "message"
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	var enc zapcore.Encoder
	switch strings.ToLower(format) {
	case "json":
		enc = zapcore.NewJSONEncoder(encoderCfg)
	case "console":
		enc = zapcore.NewConsoleEncoder(encoderCfg)
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), lvl)
	global = zap.New(core, zap.AddCaller())
	return global, nil
}

// L returns the process-wide logger. Before Init it is a no-op logger,
// which keeps tests quiet.
func L() *zap.Logger {
	return global
}

// Set replaces the process-wide logger.
func Set(l *zap.Logger) {
	global = l
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = global.Sync()
}
