package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"frame-storefront/models"
	"frame-storefront/repository"
)

// FrameImageService attaches showcase images to sub-frame types
type FrameImageService struct {
	subFrameTypes repository.SubFrameTypeRepositoryInterface
	store         ImageStore
}

// NewFrameImageService creates a new FrameImageService
func NewFrameImageService(subFrameTypes repository.SubFrameTypeRepositoryInterface, store ImageStore) *FrameImageService {
	return &FrameImageService{subFrameTypes: subFrameTypes, store: store}
}

// AttachImage optimizes the image, stores it and appends its URL to the sub-frame type
func (s *FrameImageService) AttachImage(ctx context.Context, subFrameTypeID string, data []byte) (*models.SubFrameType, error) {
	if _, err := s.subFrameTypes.GetByID(ctx, subFrameTypeID); err != nil {
		return nil, err
	}

	optimized, err := OptimizeImage(data, SizeMedium)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	key := fmt.Sprintf("sub-frame-types/%s/%s.jpg", subFrameTypeID, uuid.NewString())
	url, err := s.store.Save(ctx, key, "image/jpeg", optimized)
	if err != nil {
		log.Printf("❌ AttachImage: Error storing image for sub-frame type id=%s: %v", subFrameTypeID, err)
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	log.Printf("🖼️  AttachImage: sub-frame type id=%s image stored at %s", subFrameTypeID, url)
	return s.subFrameTypes.AddImage(ctx, subFrameTypeID, url)
}
