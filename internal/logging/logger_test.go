package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdLoggerFormatsEntries(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo).Named("poolcheck")

	logger.Debug("dropped")
	logger.Warn("algorithm deprecated", "name", "cryptonight-light", "dangling")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "[WARN] [poolcheck] algorithm deprecated name=cryptonight-light dangling")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestStdLoggerFatalExits(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelError)

	code := -1
	logger.exit = func(c int) { code = c }

	logger.Fatal("boom")
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "[FATAL] boom")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)

	assert.Equal(t, "LEVEL(9)", Level(9).String())
}
