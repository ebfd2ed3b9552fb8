package secrets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingDir(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "does-not-exist"), nil)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestLoadReadsAndTrims(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ncbi-api-key"), []byte("abc123\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "newsroom-api-key"), []byte("  nrk-42  "), 0o600))

	m, err := Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "abc123", m["ncbi-api-key"])
	assert.Equal(t, "nrk-42", m["newsroom-api-key"])
}

func TestLoadSkipsHiddenAndEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty-key"), []byte("   \n"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "subdir"), 0o755))

	m, err := Load(dir, nil)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestLoadWarnsOnUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ncbi-api-key"), []byte("abc123"), 0o600))
	// A dangling symlink lists in the directory but cannot be read.
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "broken-key")))

	var warn bytes.Buffer
	m, err := Load(dir, &warn)
	require.NoError(t, err)
	assert.Equal(t, "abc123", m["ncbi-api-key"])
	assert.NotContains(t, m, "broken-key")
	assert.Contains(t, warn.String(), "warning: could not read secret broken-key")
}
