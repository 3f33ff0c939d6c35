package logging

import (
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger configures a zap logger writing to stderr. An empty level falls back to the
// LOG_LEVEL env variable and then to warn; encoding is "console" or "json".
func NewLogger(level, encoding string) (*zap.Logger, error) {
	return newConfig(level, encoding).Build()
}

func newConfig(level, encoding string) zap.Config {
	levelStr := strings.ToLower(strings.TrimSpace(level))
	if levelStr == "" {
		levelStr = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	}
	lvl := zapcore.WarnLevel
	if levelStr != "" {
		if err := lvl.Set(levelStr); err != nil {
			lvl = zapcore.WarnLevel
		}
	}

	encoding = strings.ToLower(strings.TrimSpace(encoding))
	if encoding != "json" {
		encoding = "console"
	}

	return zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Development:      false,
		Encoding:         encoding,
		EncoderConfig:    encoderConfig(encoding),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
}

func encoderConfig(encoding string) zapcore.EncoderConfig {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     func(t time.Time, enc zapcore.PrimitiveArrayEncoder) { enc.AppendString(t.UTC().Format(time.RFC3339Nano)) },
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if encoding == "console" {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.CallerKey = zapcore.OmitKey
	}
	return cfg
}
