package storage

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "/uploads/")
	require.NoError(t, err)

	url, err := store.Save([]byte("png-bytes"), ".png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/"))

	name := path.Base(url)
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	require.NoError(t, store.Remove(url))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))

	// Removing an already-gone file is fine
	assert.NoError(t, store.Remove(url))
}

func TestLocalStorage_RemoveRejectsMalformedURL(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	assert.Error(t, store.Remove(""))
	assert.Error(t, store.Remove("/uploads/"))
}
