package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"snowrent/internal/config"
)

// ServiceName is stamped on every log line.
const ServiceName = "snowrent"

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New builds the application logger. JSON goes to stdout for the server;
// console output goes to stderr so command output on stdout stays clean.
// An unknown level falls back to info.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	var zc zap.Config
	switch cfg.Format {
	case "", FormatJSON:
		zc = zap.NewProductionConfig()
		zc.OutputPaths = []string{"stdout"}
		zc.EncoderConfig.TimeKey = "timestamp"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zc.InitialFields = map[string]interface{}{"service": ServiceName}
	case FormatConsole:
		zc = zap.NewDevelopmentConfig()
		zc.OutputPaths = []string{"stderr"}
		zc.DisableStacktrace = true
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)

	return zc.Build()
}
