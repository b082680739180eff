package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesConsoleAndFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "pricecompare.log")

	log, err := New("test", Options{Level: "debug", File: path, Console: &buf})
	require.NoError(t, err)

	log.Debug("hello")
	require.NoError(t, log.Sync())

	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "test")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("test", Options{Level: "warn", Console: &buf})
	require.NoError(t, err)

	log.Info("quiet")
	log.Warn("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New("test", Options{Level: "chatty"})
	assert.Error(t, err)
}
