package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frame-storefront/models"
)

func setupTestUploads(t *testing.T, ttl time.Duration) (*UploadService, *UploadSessionStore, *miniredis.Miniredis, *memoryImageStore, *fakeUserImageRepo) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	sessions := NewUploadSessionStore(client, ttl)
	store := newMemoryImageStore()
	images := &fakeUserImageRepo{}
	return NewUploadService(sessions, store, images), sessions, mr, store, images
}

func startRequest(chunks int) *models.StartUploadRequest {
	return &models.StartUploadRequest{FileName: "art.png", ContentType: "image/png", TotalChunks: chunks}
}

func TestUploadService_ChunkedUploadCompletes(t *testing.T) {
	svc, sessions, _, store, images := setupTestUploads(t, time.Minute)
	ctx := context.Background()

	data := pngBytes(t, 64, 48)
	half := len(data) / 2

	session, err := svc.Start(ctx, "alice", startRequest(2))
	require.NoError(t, err)
	assert.Equal(t, "alice", session.OwnerID)

	// chunks may arrive out of order
	s, err := svc.PutChunk(ctx, "alice", session.ID, 1, data[half:])
	require.NoError(t, err)
	assert.Equal(t, 1, s.Received)

	_, err = svc.Complete(ctx, "alice", session.ID)
	assert.ErrorIs(t, err, ErrUploadIncomplete)

	s, err = svc.PutChunk(ctx, "alice", session.ID, 0, data[:half])
	require.NoError(t, err)
	assert.Equal(t, 2, s.Received)

	img, err := svc.Complete(ctx, "alice", session.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", img.UserID)
	assert.Equal(t, "https://cdn.test/users/alice/"+session.ID+".jpg", img.ImageURL)
	assert.Contains(t, store.saved, "users/alice/"+session.ID+".jpg")

	owns, err := images.OwnsURL(ctx, "alice", img.ImageURL)
	require.NoError(t, err)
	assert.True(t, owns)

	_, err = sessions.Get(ctx, session.ID, "alice")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUploadSessionStore_OwnedByOneUser(t *testing.T) {
	svc, sessions, _, _, _ := setupTestUploads(t, time.Minute)
	ctx := context.Background()

	session, err := svc.Start(ctx, "alice", startRequest(1))
	require.NoError(t, err)

	_, err = svc.PutChunk(ctx, "mallory", session.ID, 0, []byte("x"))
	assert.ErrorIs(t, err, ErrSessionForbidden)

	_, err = svc.Complete(ctx, "mallory", session.ID)
	assert.ErrorIs(t, err, ErrSessionForbidden)

	assert.ErrorIs(t, svc.Abort(ctx, "mallory", session.ID), ErrSessionForbidden)

	_, err = sessions.Get(ctx, session.ID, "alice")
	assert.NoError(t, err)
}

func TestUploadSessionStore_ExpiresAbandonedUploads(t *testing.T) {
	svc, sessions, mr, _, _ := setupTestUploads(t, 10*time.Minute)
	ctx := context.Background()

	session, err := svc.Start(ctx, "alice", startRequest(2))
	require.NoError(t, err)
	_, err = svc.PutChunk(ctx, "alice", session.ID, 0, []byte("partial"))
	require.NoError(t, err)

	assert.True(t, mr.Exists(sessionKey(session.ID)))
	assert.True(t, mr.Exists(chunksKey(session.ID)))

	mr.FastForward(11 * time.Minute)

	assert.False(t, mr.Exists(sessionKey(session.ID)))
	assert.False(t, mr.Exists(chunksKey(session.ID)))

	_, err = sessions.Get(ctx, session.ID, "alice")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUploadSessionStore_RejectsBadChunks(t *testing.T) {
	_, sessions, _, _, _ := setupTestUploads(t, time.Minute)
	ctx := context.Background()

	session, err := sessions.Start(ctx, "alice", startRequest(2))
	require.NoError(t, err)

	_, err = sessions.PutChunk(ctx, session.ID, "alice", 2, []byte("x"))
	assert.ErrorIs(t, err, ErrChunkOutOfRange)

	_, err = sessions.PutChunk(ctx, session.ID, "alice", -1, []byte("x"))
	assert.ErrorIs(t, err, ErrChunkOutOfRange)

	_, err = sessions.PutChunk(ctx, session.ID, "alice", 0, make([]byte, MaxChunkSize+1))
	assert.ErrorIs(t, err, ErrChunkTooLarge)

	_, err = sessions.PutChunk(ctx, "no-such-session", "alice", 0, []byte("x"))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUploadSessionStore_CapsDeclaredChunks(t *testing.T) {
	_, sessions, _, _, _ := setupTestUploads(t, time.Minute)
	ctx := context.Background()

	_, err := sessions.Start(ctx, "alice", startRequest(200))
	assert.ErrorIs(t, err, ErrUploadTooLarge)

	_, err = sessions.Start(ctx, "alice", startRequest(MaxUploadSize/MaxChunkSize+1))
	assert.ErrorIs(t, err, ErrUploadTooLarge)

	session, err := sessions.Start(ctx, "alice", startRequest(MaxUploadSize/MaxChunkSize))
	require.NoError(t, err)
	assert.Equal(t, 5, session.TotalChunks)
}

func TestUploadSessionStore_BoundsBufferedBytes(t *testing.T) {
	_, sessions, mr, _, _ := setupTestUploads(t, time.Minute)
	sessions.maxUpload = MaxChunkSize + 10
	ctx := context.Background()

	session, err := sessions.Start(ctx, "alice", startRequest(2))
	require.NoError(t, err)

	full := make([]byte, MaxChunkSize)
	_, err = sessions.PutChunk(ctx, session.ID, "alice", 0, full)
	require.NoError(t, err)

	_, err = sessions.PutChunk(ctx, session.ID, "alice", 1, make([]byte, 11))
	assert.ErrorIs(t, err, ErrUploadTooLarge)
	keys, err := mr.HKeys(chunksKey(session.ID))
	require.NoError(t, err)
	assert.Equal(t, []string{"0"}, keys)

	s, err := sessions.PutChunk(ctx, session.ID, "alice", 1, make([]byte, 10))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Received)

	// re-sending a chunk replaces it instead of adding to the total
	_, err = sessions.PutChunk(ctx, session.ID, "alice", 0, full)
	require.NoError(t, err)

	_, data, err := sessions.Assemble(ctx, session.ID, "alice")
	require.NoError(t, err)
	assert.Len(t, data, MaxChunkSize+10)
}

func TestUploadService_AbortDiscardsChunks(t *testing.T) {
	svc, _, mr, _, _ := setupTestUploads(t, time.Minute)
	ctx := context.Background()

	session, err := svc.Start(ctx, "alice", startRequest(3))
	require.NoError(t, err)
	_, err = svc.PutChunk(ctx, "alice", session.ID, 0, []byte("x"))
	require.NoError(t, err)

	require.NoError(t, svc.Abort(ctx, "alice", session.ID))
	assert.False(t, mr.Exists(sessionKey(session.ID)))
	assert.False(t, mr.Exists(chunksKey(session.ID)))
}

func TestUploadService_CompleteRejectsNonImage(t *testing.T) {
	svc, _, _, store, _ := setupTestUploads(t, time.Minute)
	ctx := context.Background()

	session, err := svc.Start(ctx, "alice", startRequest(1))
	require.NoError(t, err)
	_, err = svc.PutChunk(ctx, "alice", session.ID, 0, []byte("definitely not a png"))
	require.NoError(t, err)

	_, err = svc.Complete(ctx, "alice", session.ID)
	assert.ErrorIs(t, err, ErrInvalidImage)
	assert.Empty(t, store.saved)
}
