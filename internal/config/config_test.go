package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad(t *testing.T) {
	t.Run("Reads values from the config file", func(t *testing.T) {
		// Given: a config file overriding the log level and the move label
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\nlabels:\n  move: \"Mossa n°\"\n  start: \"Si comincia!\"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading the config
		conf := MustLoad(path)

		// Then: file values are used and the rest falls back to defaults
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "Mossa n°", conf.Labels.Move)
		assert.Equal(t, "Si comincia!", conf.Labels.Start)
		assert.Equal(t, "Winner: ", conf.Labels.Winner)
		assert.Equal(t, "Next player: ", conf.Labels.NextPlayer)
	})

	t.Run("Panics when the file is missing", func(t *testing.T) {
		// Given: a path that does not exist
		path := filepath.Join(t.TempDir(), "missing.yml")

		// Then: MustLoad panics
		assert.Panics(t, func() { MustLoad(path) })
	})
}
