package zaplogger

import (
	"testing"

	"github.com/Zhima-Mochi/ims/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestNewHonorsLevel(t *testing.T) {
	l := New("error", observability.F("service", "test"))
	require.NotNil(t, l)

	// below the configured level; must be a no-op rather than a panic
	l.Debug("suppressed")
	l.Info("suppressed")
}
