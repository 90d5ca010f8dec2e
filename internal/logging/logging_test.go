package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		l, err := New("debug", "json")
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("ConsoleWarn", func(t *testing.T) {
		l, err := New("WARN", "console")
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, l.Core().Enabled(zapcore.ErrorLevel))
	})

	t.Run("BadLevel", func(t *testing.T) {
		_, err := New("loud", "json")
		assert.Error(t, err)
	})

	t.Run("BadFormat", func(t *testing.T) {
		_, err := New("info", "xml")
		assert.Error(t, err)
	})
}
