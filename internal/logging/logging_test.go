package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_DefaultLevel(t *testing.T) {
	logger, err := New(false, false)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestNew_Verbose(t *testing.T) {
	logger, err := New(false, true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_JSONEncoding(t *testing.T) {
	logger, err := New(true, false)
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{name: "short string unchanged", input: "short", limit: 10, expected: "short"},
		{name: "exact length unchanged", input: "12345", limit: 5, expected: "12345"},
		{name: "truncated with ellipsis", input: "a long message", limit: 6, expected: "a long..."},
		{name: "leading whitespace trimmed", input: "  padded  ", limit: 10, expected: "padded"},
		{name: "zero limit empties", input: "anything", limit: 0, expected: ""},
		{name: "multibyte safe", input: "résumé text", limit: 6, expected: "résumé..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateForLog(tt.input, tt.limit))
		})
	}
}
