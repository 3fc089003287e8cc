package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir, "/uploads")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "Shirt.PNG", "image/png", 5, strings.NewReader("hello"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestLocalSaveNamesDoNotCollide(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "/uploads")
	require.NoError(t, err)

	a, err := store.Save(context.Background(), "a.jpg", "image/jpeg", 1, strings.NewReader("a"))
	require.NoError(t, err)
	b, err := store.Save(context.Background(), "a.jpg", "image/jpeg", 1, strings.NewReader("b"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestLocalSaveCancelled(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "/uploads")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Save(ctx, "a.jpg", "image/jpeg", 1, strings.NewReader("a"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("image/jpeg"))
	assert.True(t, IsImage("IMAGE/PNG"))
	assert.False(t, IsImage("application/pdf"))
	assert.False(t, IsImage(""))
}
