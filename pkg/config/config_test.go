package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// These tests mutate the process environment and must not run in parallel.

func TestLoad_defaults(t *testing.T) {
	require := require.New(t)

	c, err := Load(filepath.Join(t.TempDir(), ".env"))
	require.NoError(err)
	require.Equal("info", c.LogLevel)
	require.Equal("/tmp/displays", c.StateDir)
	require.Equal(":8080", c.WebServerAddr)
	require.Equal(2*time.Second, c.WatchInterval)
}

func TestLoad_envFile(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(os.WriteFile(path, []byte("STATE_DIR=/var/lib/displays\nWATCH_INTERVAL=500ms\n"), 0600))
	t.Cleanup(func() {
		os.Unsetenv("STATE_DIR")
		os.Unsetenv("WATCH_INTERVAL")
	})
	t.Setenv("LOG_LEVEL", "debug")

	c, err := Load(path)
	require.NoError(err)
	require.Equal("debug", c.LogLevel)
	require.Equal("/var/lib/displays", c.StateDir)
	require.Equal(500*time.Millisecond, c.WatchInterval)
}

func TestLoad_invalidInterval(t *testing.T) {
	require := require.New(t)

	t.Setenv("WATCH_INTERVAL", "0s")

	_, err := Load("")
	require.Error(err)
}
