package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewConfig_Level(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	assert.Equal(t, zapcore.DebugLevel, newConfig("debug", "").Level.Level())
	assert.Equal(t, zapcore.WarnLevel, newConfig("", "").Level.Level())
	assert.Equal(t, zapcore.WarnLevel, newConfig("loud", "").Level.Level())
}

func TestNewConfig_LevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "ERROR")
	assert.Equal(t, zapcore.ErrorLevel, newConfig("", "").Level.Level())
	assert.Equal(t, zapcore.InfoLevel, newConfig("info", "").Level.Level())
}

func TestNewConfig_Encoding(t *testing.T) {
	assert.Equal(t, "json", newConfig("", "JSON").Encoding)
	assert.Equal(t, "console", newConfig("", "xml").Encoding)
	assert.Equal(t, []string{"stderr"}, newConfig("", "").OutputPaths)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("info", "json")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
