package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(Config{BasePath: dir, BaseURL: "/files"})
	require.NoError(t, err)

	ctx := context.Background()
	content := []byte("fake image bytes")

	result, err := store.Upload(ctx, "posts/abc.jpg", bytes.NewReader(content), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/files/posts/abc.jpg", result.URL)
	assert.Equal(t, "posts/abc.jpg", result.Key)

	onDisk, err := os.ReadFile(filepath.Join(dir, "posts", "abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, content, onDisk)

	require.NoError(t, store.Delete(ctx, "posts/abc.jpg"))
	_, err = os.Stat(filepath.Join(dir, "posts", "abc.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStoreDeleteMissingIsNotAnError(t *testing.T) {
	store, err := NewLocalStore(Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "posts/never-existed.jpg"))
}

func TestLocalStoreDefaults(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(Config{BasePath: dir})
	require.NoError(t, err)

	assert.Equal(t, "/files", store.BaseURL())
	assert.Equal(t, dir, store.BasePath())
}

func TestNewObjectStoreFactory(t *testing.T) {
	store, err := NewObjectStore(Config{Type: "local", BasePath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)

	_, err = NewObjectStore(Config{Type: "ftp"})
	assert.Error(t, err)

	_, err = NewObjectStore(Config{Type: "cloudflare_r2", Bucket: "b"})
	assert.Error(t, err, "R2 without an endpoint must be rejected")
}
