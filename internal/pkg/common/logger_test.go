package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggingSafeWithoutInit(t *testing.T) {
	// The default logger must be usable before InitLogger runs.
	assert.NotPanics(t, func() {
		LogInfo("info before init", zap.String("k", "v"))
		LogWarn("warn before init")
		LogError("error before init")
		LogDebug("debug before init")
		Sync()
	})
}

func TestLogWrappersForwardFields(t *testing.T) {
	core, recorded := observer.New(zap.DebugLevel)
	prev := Logger
	Logger = zap.New(core)
	defer func() { Logger = prev }()

	LogInfo("something happened", zap.String("title", "Menemen"))

	entries := recorded.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "something happened", entries[0].Message)
	assert.Equal(t, "Menemen", entries[0].ContextMap()["title"])
}
