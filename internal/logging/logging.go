// Package logging builds the process logger.
package logging

import (
	"github.com/primus-game/primus/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level maps a configured level name to a zap level. Unknown names log at
// info.
func Level(name string) zapcore.Level {
	switch name {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a logger. The json format uses the production encoder;
// anything else gets the colored development console.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(Level(cfg.Level))
	// the terminal belongs to the game, so logs go to stderr
	zapCfg.OutputPaths = []string{"stderr"}

	return zapCfg.Build()
}
