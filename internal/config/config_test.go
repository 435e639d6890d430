package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bfvm.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()

	level, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, level)

	cells, err := c.MaxTapeCells()
	require.NoError(t, err)
	assert.Equal(t, 0, cells, "default tape should be unbounded")
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
max_tape = "64KiB"
`)
	c, err := Load(path)
	require.NoError(t, err)

	level, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)

	cells, err := c.MaxTapeCells()
	require.NoError(t, err)
	assert.Equal(t, 64*1024, cells)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, `max_tape = "30 kB"`))
	require.NoError(t, err)
	assert.Equal(t, DefaultLogLevel, c.LogLevel)

	cells, err := c.MaxTapeCells()
	require.NoError(t, err)
	assert.Equal(t, 30000, cells)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(writeConfig(t, `log_level = `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse error")
}

func TestLoad_BadLevel(t *testing.T) {
	_, err := Load(writeConfig(t, `log_level = "loud"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestLoad_BadTapeSize(t *testing.T) {
	_, err := Load(writeConfig(t, `max_tape = "lots"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_tape")
}

func TestMaxTapeCells_TooLarge(t *testing.T) {
	c := &Config{MaxTape: "1 PB"}
	_, err := c.MaxTapeCells()
	assert.Error(t, err)
}
