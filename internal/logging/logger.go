// Package logging builds the zap logger used for diagnostics. Diagnostics
// never share the console the session talks to the user on.
package logging

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/GoSim-25-26J-441/projects-console/config"
)

// New creates a logger from the app config. The returned cleanup closes the
// log file, if one was opened.
func New(cfg config.AppConfig) (*zap.Logger, func(), error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	sink := zapcore.Lock(os.Stderr)
	cleanup := func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		sink = zapcore.AddSync(f)
		cleanup = func() { _ = f.Close() }
	}

	core := zapcore.NewCore(newEncoder(cfg.LogFormat), sink, level)
	logger := zap.New(core, zap.AddCaller()).With(
		zap.String("env", cfg.Environment),
		zap.String("version", cfg.Version),
	)
	return logger, cleanup, nil
}

// newEncoder creates JSON or console encoder.
func newEncoder(format string) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "console" {
		return zapcore.NewConsoleEncoder(encoderCfg)
	}
	return zapcore.NewJSONEncoder(encoderCfg)
}

// ForSession returns a child logger tagged with a fresh session id.
func ForSession(l *zap.Logger) *zap.Logger {
	return l.With(zap.String("session_id", uuid.NewString()))
}
