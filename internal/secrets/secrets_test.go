// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingDirectory(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad_ReadsKeyFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyScopusAPIKey), []byte("abc123\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyWoSAPIKey), []byte("  def456  "), 0o600))

	got, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "abc123", got[KeyScopusAPIKey])
	assert.Equal(t, "def456", got[KeyWoSAPIKey])
}

func TestLoad_SkipsHiddenFilesAndDirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeySerpAPIKey), []byte("key"), 0o600))

	got, err := Load(dir)
	require.NoError(t, err)

	assert.Len(t, got, 1)
	assert.Equal(t, "key", got[KeySerpAPIKey])
}

func TestLoad_SkipsEmptyValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyCrossrefMailto), []byte("   \n"), 0o600))

	got, err := Load(dir)
	require.NoError(t, err)
	assert.NotContains(t, got, KeyCrossrefMailto)
}
