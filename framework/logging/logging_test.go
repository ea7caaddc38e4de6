package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/redhat/browser-e2e-tests/test/framework/config"
)

func TestNew_ConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "e2e.log")

	logger := New(config.LogConfig{Level: "debug", File: path}, &console)
	logger.Debug("session started", zap.String("mode", "local"))
	require.NoError(t, logger.Close())

	assert.Contains(t, console.String(), "session started")
	assert.Contains(t, console.String(), "e2e")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "session started", entry["msg"])
	assert.Equal(t, "local", entry["mode"])
}

func TestNew_LevelFiltering(t *testing.T) {
	var console bytes.Buffer
	logger := New(config.LogConfig{Level: "warn"}, &console)

	logger.Info("quiet")
	logger.Warn("loud")
	require.NoError(t, logger.Close())

	assert.NotContains(t, console.String(), "quiet")
	assert.Contains(t, console.String(), "loud")
}

func TestNew_BadLevelMeansInfo(t *testing.T) {
	var console bytes.Buffer
	logger := New(config.LogConfig{Level: "chatty"}, &console)

	logger.Debug("hidden")
	logger.Info("shown")
	require.NoError(t, logger.Close())

	lines := strings.Split(strings.TrimSpace(console.String()), "\n")
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "shown")
}
