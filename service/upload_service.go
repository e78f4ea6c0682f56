package service

import (
	"context"
	"fmt"
	"log"

	"frame-storefront/models"
	"frame-storefront/repository"
)

// UploadService drives chunked image uploads from session start to a stored, recorded image
type UploadService struct {
	sessions *UploadSessionStore
	store    ImageStore
	images   repository.UserImageRepositoryInterface
}

// NewUploadService creates a new UploadService
func NewUploadService(sessions *UploadSessionStore, store ImageStore, images repository.UserImageRepositoryInterface) *UploadService {
	return &UploadService{sessions: sessions, store: store, images: images}
}

// Start opens an upload session for the user
func (s *UploadService) Start(ctx context.Context, userID string, req *models.StartUploadRequest) (*models.UploadSession, error) {
	session, err := s.sessions.Start(ctx, userID, req)
	if err != nil {
		log.Printf("❌ Start: Error opening upload session: %v", err)
		return nil, err
	}
	log.Printf("📥 Start: upload session id=%s for user_id=%s, chunks=%d", session.ID, userID, session.TotalChunks)
	return session, nil
}

// PutChunk stores one chunk of the user's session
func (s *UploadService) PutChunk(ctx context.Context, userID, sessionID string, index int, data []byte) (*models.UploadSession, error) {
	return s.sessions.PutChunk(ctx, sessionID, userID, index, data)
}

// Complete assembles the chunks, optimizes the image, stores it and records it for the user.
// The session is removed once the image is recorded.
func (s *UploadService) Complete(ctx context.Context, userID, sessionID string) (*models.UserImage, error) {
	session, data, err := s.sessions.Assemble(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	optimized, err := OptimizeImage(data, SizeFull)
	if err != nil {
		log.Printf("❌ Complete: Error optimizing upload %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	key := fmt.Sprintf("users/%s/%s.jpg", userID, session.ID)
	url, err := s.store.Save(ctx, key, "image/jpeg", optimized)
	if err != nil {
		log.Printf("❌ Complete: Error storing image: %v", err)
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	img, err := s.images.Create(ctx, &models.UserImage{UserID: userID, ImageURL: url, StoreKey: key})
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		log.Printf("⚠️  Complete: Could not delete session %s: %v", sessionID, err)
	}

	log.Printf("✅ Complete: upload %s stored at %s", sessionID, url)
	return img, nil
}

// Abort discards the user's session and any chunks received so far
func (s *UploadService) Abort(ctx context.Context, userID, sessionID string) error {
	if _, err := s.sessions.Get(ctx, sessionID, userID); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, sessionID)
}

// ListImages returns the user's completed uploads
func (s *UploadService) ListImages(ctx context.Context, userID string) ([]models.UserImage, error) {
	return s.images.ListByUser(ctx, userID)
}
