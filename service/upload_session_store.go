package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"frame-storefront/models"
)

// Upload session errors
var (
	ErrSessionNotFound  = errors.New("upload session not found or expired")
	ErrSessionForbidden = errors.New("upload session belongs to another user")
	ErrChunkOutOfRange  = errors.New("chunk index out of range")
	ErrChunkTooLarge    = errors.New("chunk exceeds maximum size")
	ErrUploadIncomplete = errors.New("upload is missing chunks")
	ErrUploadTooLarge   = errors.New("upload exceeds maximum size")
)

// MaxChunkSize is the largest chunk accepted in one request
const MaxChunkSize = 5 << 20

// MaxUploadSize caps the assembled file
const MaxUploadSize = 25 << 20

// chunkWriteRetries bounds optimistic retries when chunks of one session are written concurrently
const chunkWriteRetries = 3

// UploadSessionStore keeps chunked upload sessions in Redis. Every session and its chunks
// expire together, so abandoned uploads are evicted without a sweeper.
type UploadSessionStore struct {
	client    *redis.Client
	ttl       time.Duration
	maxUpload int64
	now       func() time.Time
}

// NewUploadSessionStore creates an UploadSessionStore whose sessions live for ttl
func NewUploadSessionStore(client *redis.Client, ttl time.Duration) *UploadSessionStore {
	return &UploadSessionStore{client: client, ttl: ttl, maxUpload: MaxUploadSize, now: time.Now}
}

// maxChunks is the most chunks a session may declare
func (s *UploadSessionStore) maxChunks() int {
	return int((s.maxUpload + MaxChunkSize - 1) / MaxChunkSize)
}

func sessionKey(id string) string {
	return fmt.Sprintf("upload:session:%s", id)
}

func chunksKey(id string) string {
	return fmt.Sprintf("upload:chunks:%s", id)
}

// Start opens a new session owned by ownerID
func (s *UploadSessionStore) Start(ctx context.Context, ownerID string, req *models.StartUploadRequest) (*models.UploadSession, error) {
	if limit := s.maxChunks(); req.TotalChunks > limit {
		return nil, fmt.Errorf("%w: %d chunks declared, at most %d allowed", ErrUploadTooLarge, req.TotalChunks, limit)
	}

	session := &models.UploadSession{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		TotalChunks: req.TotalChunks,
		ExpiresAt:   s.now().Add(s.ttl).UTC(),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("marshal upload session failed: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.ID), data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("redis set failed: %w", err)
	}
	return session, nil
}

// Get returns the session if it exists and belongs to ownerID
func (s *UploadSessionStore) Get(ctx context.Context, id, ownerID string) (*models.UploadSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var session models.UploadSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal upload session failed: %w", err)
	}
	if session.OwnerID != ownerID {
		return nil, ErrSessionForbidden
	}

	received, err := s.client.HLen(ctx, chunksKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hlen failed: %w", err)
	}
	session.Received = int(received)
	return &session, nil
}

// PutChunk stores chunk index of the session. Re-sending a chunk replaces it.
// The chunks buffered for a session never add up to more than the upload limit.
func (s *UploadSessionStore) PutChunk(ctx context.Context, id, ownerID string, index int, data []byte) (*models.UploadSession, error) {
	session, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= session.TotalChunks {
		return nil, fmt.Errorf("%w: %d of %d", ErrChunkOutOfRange, index, session.TotalChunks)
	}
	if len(data) > MaxChunkSize {
		return nil, ErrChunkTooLarge
	}

	key := chunksKey(id)
	write := func(tx *redis.Tx) error {
		buffered, err := bufferedBytes(ctx, tx, key, session.TotalChunks, index)
		if err != nil {
			return err
		}
		if buffered+int64(len(data)) > s.maxUpload {
			return fmt.Errorf("%w: %d bytes already buffered", ErrUploadTooLarge, buffered)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, strconv.Itoa(index), data)
			pipe.ExpireAt(ctx, key, session.ExpiresAt)
			return nil
		})
		return err
	}

	for attempt := 0; ; attempt++ {
		err = s.client.Watch(ctx, write, key)
		if !errors.Is(err, redis.TxFailedErr) || attempt == chunkWriteRetries {
			break
		}
	}
	if err != nil {
		if errors.Is(err, ErrUploadTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("redis chunk write failed: %w", err)
	}

	received, err := s.client.HLen(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hlen failed: %w", err)
	}
	session.Received = int(received)
	return session, nil
}

// bufferedBytes sums the stored chunks of a session, leaving out the chunk about to be replaced
func bufferedBytes(ctx context.Context, tx *redis.Tx, key string, totalChunks, skip int) (int64, error) {
	var total int64
	for i := 0; i < totalChunks; i++ {
		if i == skip {
			continue
		}
		n, err := tx.HStrLen(ctx, key, strconv.Itoa(i)).Result()
		if err != nil {
			return 0, fmt.Errorf("redis hstrlen failed: %w", err)
		}
		total += n
	}
	return total, nil
}

// Assemble concatenates every chunk in index order. All chunks must be present.
func (s *UploadSessionStore) Assemble(ctx context.Context, id, ownerID string) (*models.UploadSession, []byte, error) {
	session, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, nil, err
	}
	if session.Received != session.TotalChunks {
		return nil, nil, fmt.Errorf("%w: have %d of %d", ErrUploadIncomplete, session.Received, session.TotalChunks)
	}

	chunks, err := s.client.HGetAll(ctx, chunksKey(id)).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	indexes := make([]int, 0, len(chunks))
	size := 0
	for k, v := range chunks {
		i, err := strconv.Atoi(k)
		if err != nil {
			return nil, nil, fmt.Errorf("corrupt chunk key %q", k)
		}
		indexes = append(indexes, i)
		size += len(v)
	}
	if int64(size) > s.maxUpload {
		return nil, nil, ErrUploadTooLarge
	}
	sort.Ints(indexes)

	out := make([]byte, 0, size)
	for _, i := range indexes {
		out = append(out, chunks[strconv.Itoa(i)]...)
	}
	return session, out, nil
}

// Delete removes a session and its chunks
func (s *UploadSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id), chunksKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
