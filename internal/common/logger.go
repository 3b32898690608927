package common

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dtnitsch/cauldron/models"
)

// NewLogger builds the console logger. Everything goes to stderr so stdout
// carries only rendered output. Level is one of none, normal or debug.
func NewLogger(cfg models.LoggingConfig) (*zap.Logger, error) {
	return newLogger(cfg, zapcore.Lock(os.Stderr))
}

func newLogger(cfg models.LoggingConfig, out zapcore.WriteSyncer) (*zap.Logger, error) {
	var floor zapcore.Level
	switch cfg.Level {
	case "none":
		return zap.NewNop(), nil
	case "", "normal":
		floor = zapcore.InfoLevel
	case "debug":
		floor = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("unknown log level %q", cfg.Level)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	if floor > zapcore.DebugLevel {
		ec.TimeKey = zapcore.OmitKey
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), out, zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= floor
	}))
	return zap.New(core), nil
}
