package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLog(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		core, observed = observer.New(zap.InfoLevel)
		logger         = Logger{zap.New(core)}
	)

	assert.NoError(logger.Log("msg", "expected message", "count", 3))

	entries := observed.All()
	require.Len(entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal("expected message", fields["msg"])
	assert.Equal(int64(3), fields["count"])
}

func TestLogOddKeyvals(t *testing.T) {
	var (
		assert = assert.New(t)

		core, observed = observer.New(zap.InfoLevel)
		logger         = Logger{zap.New(core)}
	)

	assert.NoError(logger.Log("orphan"))
	assert.Equal(1, observed.Len())
}
