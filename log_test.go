package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerAppendsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.log")
	cfg := Config{LogFile: path, LogLevel: "debug"}

	for _, msg := range []string{"first run", "second run"} {
		log, closer, err := newLogger(cfg)
		require.NoError(t, err)
		critical(log).Str("variable", envChatID).Msg(msg)
		require.NoError(t, closer.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "CRITICAL,")
	assert.Contains(t, lines[0], "first run")
	assert.Contains(t, lines[0], "variable="+envChatID)
	assert.Contains(t, lines[1], "second run")
}

func TestNewLoggerLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.log")

	log, closer, err := newLogger(Config{LogFile: path, LogLevel: "error"})
	require.NoError(t, err)
	log.Debug().Msg("no new updates")
	log.Error().Msg("endpoint returned status code: 503")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "no new updates")
	assert.Contains(t, string(data), "ERROR,")
}

func TestNewLoggerBadPath(t *testing.T) {
	_, _, err := newLogger(Config{LogFile: filepath.Join(t.TempDir(), "missing", "main.log")})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel(""))
	assert.Equal(t, zerolog.DebugLevel, parseLevel("loud"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel(" Error "))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("info"))
}
