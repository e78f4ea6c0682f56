package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDriveStore(upload func(ctx context.Context, key, contentType string, data []byte) (string, error)) *DriveImageStore {
	return &DriveImageStore{folderID: "folder", breaker: newDriveBreaker(), upload: upload}
}

func TestNewDriveImageStore_RequiresFolder(t *testing.T) {
	_, err := NewDriveImageStore(context.Background(), "creds.json", "")
	assert.Error(t, err)
}

func TestDriveImageStore_Save(t *testing.T) {
	var gotKey, gotType string
	store := newTestDriveStore(func(ctx context.Context, key, contentType string, data []byte) (string, error) {
		gotKey, gotType = key, contentType
		return "https://drive.google.com/uc?id=abc", nil
	})

	url, err := store.Save(context.Background(), "users/alice/1.jpg", "image/jpeg", []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "https://drive.google.com/uc?id=abc", url)
	assert.Equal(t, "users/alice/1.jpg", gotKey)
	assert.Equal(t, "image/jpeg", gotType)
}

func TestDriveImageStore_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	driveDown := errors.New("drive: 503 backend error")
	calls := 0
	store := newTestDriveStore(func(ctx context.Context, key, contentType string, data []byte) (string, error) {
		calls++
		return "", driveDown
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.Save(ctx, "k.jpg", "image/jpeg", []byte("x"))
		assert.ErrorIs(t, err, driveDown)
	}
	assert.Equal(t, gobreaker.StateOpen, store.breaker.State())

	_, err := store.Save(ctx, "k.jpg", "image/jpeg", []byte("x"))
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Contains(t, err.Error(), "temporarily unavailable")
	assert.Equal(t, 3, calls, "an open breaker must not reach drive")
}
