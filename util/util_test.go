package util

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanTmpFolder(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dir := "/tmp/ingest"

	require.NoError(t, afero.WriteFile(fsys, filepath.Join(dir, "stray.mp3"), []byte("x"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(dir, ".gitignore"), []byte("*"), 0o644))
	require.NoError(t, fsys.Mkdir(filepath.Join(dir, "keep"), 0o755))

	require.NoError(t, CleanTmpFolder(context.Background(), fsys, dir))

	exists, err := afero.Exists(fsys, filepath.Join(dir, "stray.mp3"))
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = afero.Exists(fsys, filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.True(t, exists, "dotfiles stay")

	exists, err = afero.DirExists(fsys, filepath.Join(dir, "keep"))
	require.NoError(t, err)
	assert.True(t, exists, "directories stay")
}

func TestCleanTmpFolderMissingDir(t *testing.T) {
	err := CleanTmpFolder(context.Background(), afero.NewMemMapFs(), "/does/not/exist")
	assert.Error(t, err)
}
