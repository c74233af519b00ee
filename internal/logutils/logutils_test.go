package logutils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := NewWithWriter("warn", "", &buf)
	require.NoError(t, err)
	defer closer()

	logger.Info().Msg("hidden")
	logger.Warn().Str("field", "email").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"field":"email"`)
	assert.Contains(t, out, `"message":"shown"`)
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "formgate.log")
	logger, closer, err := New("debug", path)
	require.NoError(t, err)

	logger.Debug().Msg("indexed")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "indexed")
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, _, err := New("loud", "")
	require.Error(t, err)
}
