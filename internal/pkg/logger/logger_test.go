package logger_test

import (
	"testing"

	"amendments/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	log, err := logger.New("warn", "json")
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_InvalidInput(t *testing.T) {
	_, err := logger.New("loud", "json")
	require.Error(t, err)

	_, err = logger.New("info", "xml")
	require.Error(t, err)
}
