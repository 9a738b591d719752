package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesFolder_When_Missing(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "results")
	got, created, err := EnsureDir(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, got)
	assert.True(t, created)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureDir_ReusesFolder_When_Present(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	got, created, err := EnsureDir(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, got)
	assert.False(t, created)
}

func TestEnsureDir_FallsBackToWorkingDir_When_PathIsFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "results")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	got, _, err := EnsureDir(file)

	assert.Error(t, err)
	assert.Equal(t, ".", got)
}

func TestEnsureDir_FallsBackToWorkingDir_When_ParentIsFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	got, _, err := EnsureDir(filepath.Join(file, "results"))

	assert.Error(t, err)
	assert.Equal(t, ".", got)
}
