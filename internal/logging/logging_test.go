package logging_test

import (
	"testing"

	"shop-erp/internal/config"
	"shop-erp/internal/logging"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{AppEnv: "prod"},
		Logger: config.LoggerConfig{Level: "warn", Encoding: "json"},
	}
	logger, err := logging.New(cfg)
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	require.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_RejectsBadSettings(t *testing.T) {
	_, err := logging.New(&config.Config{Logger: config.LoggerConfig{Level: "loud"}})
	require.Error(t, err)

	_, err = logging.New(&config.Config{Logger: config.LoggerConfig{Level: "info", Encoding: "xml"}})
	require.Error(t, err)
}

func TestPreset_EmptyEncodingKeepsPresetDefault(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOGGER_LEVEL", "info")
	t.Setenv("LOGGER_ENCODING", "")
	zc, err := logging.Preset(config.LoadEnv())
	require.NoError(t, err)
	require.Equal(t, "json", zc.Encoding)

	t.Setenv("APP_ENV", "dev")
	zc, err = logging.Preset(config.LoadEnv())
	require.NoError(t, err)
	require.Equal(t, "console", zc.Encoding)

	t.Setenv("APP_ENV", "production")
	t.Setenv("LOGGER_ENCODING", "console")
	zc, err = logging.Preset(config.LoadEnv())
	require.NoError(t, err)
	require.Equal(t, "console", zc.Encoding)
}
