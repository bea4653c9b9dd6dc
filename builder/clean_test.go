package builder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanDefaultBuildDir(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.MkdirAll("build", 0755))
	require.NoError(t, os.WriteFile(filepath.Join("build", "stale_file.txt"), []byte("x"), 0664))

	removed, err := Clean("build")
	require.NoError(t, err)

	assert.True(t, removed)
	assert.NoDirExists(t, filepath.Join(dir, "build"))
}

func TestCleanMissingDir(t *testing.T) {
	chdir(t, t.TempDir())

	removed, err := Clean("build")
	require.NoError(t, err)

	assert.False(t, removed)
	assert.NoDirExists(t, "build")
}

func TestCleanIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "build")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "CMakeFiles"), 0755))

	removed, err := Clean(dir)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = Clean(dir)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCleanOnlyTouchesNamedDir(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.MkdirAll("build", 0755))
	require.NoError(t, os.MkdirAll("foo", 0755))

	removed, err := Clean("foo")
	require.NoError(t, err)

	assert.True(t, removed)
	assert.NoDirExists(t, "foo")
	assert.DirExists(t, "build")
}

func TestCleanRefusesFiles(t *testing.T) {
	file := filepath.Join(t.TempDir(), "build")
	require.NoError(t, os.WriteFile(file, []byte("not a dir"), 0664))

	removed, err := Clean(file)

	assert.False(t, removed)
	assert.True(t, errors.Is(err, ErrNotDirectory))
	assert.True(t, errors.Is(err, ErrFilesystem))
	assert.FileExists(t, file)
}

func TestCleanDoesNotFollowSymlinks(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "real")
	require.NoError(t, os.MkdirAll(target, 0755))
	link := filepath.Join(root, "build")
	require.NoError(t, os.Symlink(target, link))

	_, err := Clean(link)

	assert.True(t, errors.Is(err, ErrNotDirectory))
	assert.DirExists(t, target)
}

func TestCleanPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	root := t.TempDir()
	dir := filepath.Join(root, "build")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "obj.o"), nil, 0664))
	require.NoError(t, os.Chmod(filepath.Join(dir, "sub"), 0555))
	t.Cleanup(func() { os.Chmod(filepath.Join(dir, "sub"), 0755) })

	_, err := Clean(dir)

	assert.True(t, errors.Is(err, ErrFilesystem))
	assert.False(t, errors.Is(err, ErrNotDirectory))
}
