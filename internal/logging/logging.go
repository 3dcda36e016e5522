package logging

import (
	"fmt"

	"shop-erp/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger from Preset.
func New(cfg *config.Config) (*zap.Logger, error) {
	zc, err := Preset(cfg)
	if err != nil {
		return nil, err
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.With(zap.String("env", cfg.Server.AppEnv)), nil
}

// Preset picks the zap configuration. Production environments get the JSON
// production preset; everything else gets the development console preset.
// LOGGER_LEVEL and a non-empty LOGGER_ENCODING override either preset.
func Preset(cfg *config.Config) (zap.Config, error) {
	var zc zap.Config
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Logger.Level)
	if err != nil {
		return zap.Config{}, fmt.Errorf("invalid LOGGER_LEVEL %q: %w", cfg.Logger.Level, err)
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	switch cfg.Logger.Encoding {
	case "json", "console":
		zc.Encoding = cfg.Logger.Encoding
	case "":
	default:
		return zap.Config{}, fmt.Errorf("invalid LOGGER_ENCODING %q", cfg.Logger.Encoding)
	}
	zc.DisableCaller = cfg.Logger.DisableCaller
	zc.DisableStacktrace = cfg.Logger.DisableStacktrace
	return zc, nil
}
