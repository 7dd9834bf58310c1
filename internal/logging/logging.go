package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a named production logger. Log level defaults to info and can
// be lowered with LOG_LEVEL=debug.
func New(component string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if os.Getenv("LOG_LEVEL") == "debug" {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		// Fall back to a no-op logger rather than failing startup.
		return zap.NewNop().Named(component)
	}

	return logger.Named(component)
}
