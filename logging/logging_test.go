package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLogger(t *testing.T) {
	assert := assert.New(t)

	logger := DefaultLogger()
	assert.NotNil(logger)
	assert.NoError(logger.Log(MessageKey(), "this should go nowhere"))
}

func testNewNilOptions(t *testing.T) {
	assert := assert.New(t)
	assert.NotNil(New(nil))
}

func testNewJSON(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		output bytes.Buffer
		o      = &Options{JSON: true, Level: "INFO"}
		logger = NewFilter(o.loggerFactory()(&output), o)
	)

	require.NoError(Info(logger).Log(MessageKey(), "expected message"))

	var entry map[string]interface{}
	require.NoError(json.Unmarshal(output.Bytes(), &entry))
	assert.Equal("expected message", entry["msg"])
}

func testNewLevelFilter(t *testing.T) {
	var (
		assert = assert.New(t)

		output bytes.Buffer
		o      = &Options{Level: "ERROR"}
		logger = NewFilter(o.loggerFactory()(&output), o)
	)

	assert.NoError(Debug(logger).Log(MessageKey(), "filtered"))
	assert.Empty(output.String())

	assert.NoError(Error(logger).Log(MessageKey(), "passed through"))
	assert.Contains(output.String(), "passed through")
}

func TestNew(t *testing.T) {
	t.Run("NilOptions", testNewNilOptions)
	t.Run("JSON", testNewJSON)
	t.Run("LevelFilter", testNewLevelFilter)
}

func TestNewTestLogger(t *testing.T) {
	assert := assert.New(t)

	logger := NewTestLogger(nil, t)
	assert.NotNil(logger)
	assert.NoError(Debug(logger).Log(MessageKey(), "visible in verbose test output"))
}

// capturingSink records entries the way testing.T.Log receives them.
type capturingSink struct {
	entries []string
}

func (c *capturingSink) Log(args ...interface{}) {
	for _, a := range args {
		c.entries = append(c.entries, a.(string))
	}
}

func TestNewTestLoggerSink(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		sink   = new(capturingSink)
		logger = NewTestLogger(nil, sink)
	)

	// nil options default to DEBUG, so debug output reaches the sink
	assert.NoError(Debug(logger).Log(MessageKey(), "expected message"))

	require.Len(sink.entries, 1)
	assert.Contains(sink.entries[0], "expected message")
}

func testFromViperNil(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	o, err := FromViper(nil)
	require.NoError(err)
	assert.NotNil(o)
}

func testFromViperUnmarshal(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		v = viper.New()
	)

	v.SetConfigType("json")
	require.NoError(v.ReadConfig(strings.NewReader(
		`{"log": {"file": "stdout", "json": true, "level": "DEBUG"}}`,
	)))

	o, err := FromViper(Sub(v))
	require.NoError(err)
	assert.Equal(StdoutFile, o.File)
	assert.True(o.JSON)
	assert.Equal("DEBUG", o.Level)
}

func TestFromViper(t *testing.T) {
	t.Run("Nil", testFromViperNil)
	t.Run("Unmarshal", testFromViperUnmarshal)
}
