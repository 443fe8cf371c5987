package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestHelpersAreSafeBeforeInit(t *testing.T) {
	S = nil
	assert.NotPanics(t, func() {
		ZapLogger{}.ErrorObj("boom", "error", "x")
	})
	assert.NoError(t, Close())
}
