package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreGlobals(t *testing.T) {
	t.Helper()
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
}

func TestSetLevel(t *testing.T) {
	restoreGlobals(t)

	SetLevel("debug")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	SetLevel("")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	SetLevel("not-a-level")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestSetupWithWriter_Console(t *testing.T) {
	restoreGlobals(t)
	var buf bytes.Buffer

	closer, err := SetupWithWriter(Config{Level: "info"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	log.Info().Msg("scored candidate")
	log.Debug().Msg("hidden")

	assert.Contains(t, buf.String(), "scored candidate")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestSetupWithWriter_JSONFile(t *testing.T) {
	restoreGlobals(t)
	path := filepath.Join(t.TempDir(), "patchsim.log")

	closer, err := SetupWithWriter(Config{Level: "info", File: path, JSONFormat: true}, &bytes.Buffer{})
	require.NoError(t, err)

	log.Info().Str("strategy", "cossim").Msg("ranked")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.NotEmpty(t, lines)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	assert.Equal(t, "ranked", entry["message"])
	assert.Equal(t, "cossim", entry["strategy"])
}

func TestSetup_BadFile(t *testing.T) {
	restoreGlobals(t)

	_, err := SetupWithWriter(Config{File: filepath.Join(t.TempDir(), "missing", "x.log")}, &bytes.Buffer{})
	assert.Error(t, err)
}
