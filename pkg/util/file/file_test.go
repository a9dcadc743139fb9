package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExist(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")

	ok, err := Exist(path)
	require.NoError(err)
	require.False(ok)

	require.NoError(os.WriteFile(path, []byte("LOG_LEVEL=debug\n"), 0600))
	ok, err = Exist(path)
	require.NoError(err)
	require.True(ok)

	ok, err = Exist(dir)
	require.NoError(err)
	require.False(ok)
}
