package kit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	l := NewLogger("catalog", "warn")
	require.NotNil(t, l)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l = NewLogger("catalog", "verbose")
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel), "unknown level keeps info")
}
