package disk

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unikiosk/displays/pkg/api"
	"github.com/unikiosk/displays/pkg/config"
	"github.com/unikiosk/displays/pkg/store"
	"github.com/unikiosk/displays/pkg/util/logger"
)

func newTestStore(t *testing.T) (*DiskStore, string) {
	dir := t.TempDir()
	s, err := New(logger.GetLoggerInstance("", zap.DebugLevel), &config.Config{StateDir: dir})
	require.NoError(t, err)
	return s, dir
}

func TestDiskStore(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	s, _ := newTestStore(t)

	_, err := s.Get()
	require.ErrorIs(err, store.ErrNotFound)

	in := api.Snapshot{
		Taken: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
		Monitors: []api.Monitor{
			{ID: "65537", Primary: true, Width: 1920, Height: 1080},
			{ID: "65539", Width: 1280, Height: 1024},
		},
	}
	require.NoError(s.Persist(in))

	out, err := s.Get()
	require.NoError(err)
	require.True(in.Taken.Equal(out.Taken))
	require.True(in.Equal(*out))
}

func TestDiskStore_survivesRestart(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	s, dir := newTestStore(t)
	require.NoError(s.Persist(api.Snapshot{Monitors: []api.Monitor{{ID: "1"}}}))

	reopened, err := New(logger.GetLoggerInstance("", zap.DebugLevel), &config.Config{StateDir: dir})
	require.NoError(err)
	out, err := reopened.Get()
	require.NoError(err)
	require.Len(out.Monitors, 1)
}

func TestDiskStore_corrupt(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	s, dir := newTestStore(t)
	require.NoError(os.WriteFile(filepath.Join(dir, snapshotKey), []byte("{"), 0600))

	_, err := s.Get()
	require.ErrorIs(err, store.ErrCorrupt)
	require.NotErrorIs(err, store.ErrNotFound)

	// a fresh write replaces the damaged file
	require.NoError(s.Persist(api.Snapshot{Monitors: []api.Monitor{{ID: "1"}}}))
	out, err := s.Get()
	require.NoError(err)
	require.Len(out.Monitors, 1)
}

func TestNew_noStateDir(t *testing.T) {
	t.Parallel()

	_, err := New(logger.GetLoggerInstance("", zap.DebugLevel), &config.Config{})
	require.Error(t, err)
}
