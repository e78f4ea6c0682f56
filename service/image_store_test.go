package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalImageStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalImageStore(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "users/u1/a.jpg", "image/jpeg", []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/users/u1/a.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "users", "u1", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), data)
}

func TestLocalImageStore_KeyCannotEscapeDirectory(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalImageStore(filepath.Join(dir, "store"), "/uploads")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "../../etc/passwd", "image/jpeg", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/etc/passwd", url)
	assert.FileExists(t, filepath.Join(dir, "store", "etc", "passwd"))

	_, err = store.Save(context.Background(), "/", "image/jpeg", []byte("x"))
	assert.Error(t, err)
}
