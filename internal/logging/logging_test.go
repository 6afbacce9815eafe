package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestReplaceRoutesPackageHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Replace(zap.New(core))
	defer restore()

	Debug("recomputed", zap.String("client", "psp_merchants"))
	Warn("out of range", zap.String("field", "monthly_volume"))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "recomputed", entries[0].Message)
	assert.Equal(t, "psp_merchants", entries[0].ContextMap()["client"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestReplaceRestoresPrevious(t *testing.T) {
	original := Logger
	restore := Replace(zap.NewNop())
	assert.NotSame(t, original, Logger)

	restore()
	assert.Same(t, original, Logger)
}

func TestInitializeWritesToFile(t *testing.T) {
	restore := Replace(Logger)
	defer restore()

	path := filepath.Join(t.TempDir(), "pricing.log")
	err := Initialize(Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	assert.True(t, Logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Logger.Core().Enabled(zapcore.DebugLevel))
}

func TestInitializeFallsBackOnBadLevel(t *testing.T) {
	restore := Replace(Logger)
	defer restore()

	require.NoError(t, Initialize(Config{Level: "loud", Format: "console", Output: "stderr"}))
	assert.True(t, Logger.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, Logger.Core().Enabled(zapcore.InfoLevel))
}
