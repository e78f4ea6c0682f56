package repository

import (
	"context"
	"fmt"
	"log"

	"frame-storefront/db"
	"frame-storefront/models"
)

// UserImageRepository records images uploaded by users
type UserImageRepository struct{}

// NewUserImageRepository creates a new UserImageRepository
func NewUserImageRepository() *UserImageRepository {
	return &UserImageRepository{}
}

// Ensure UserImageRepository implements UserImageRepositoryInterface
var _ UserImageRepositoryInterface = (*UserImageRepository)(nil)

// Create records a completed upload
func (r *UserImageRepository) Create(ctx context.Context, img *models.UserImage) (*models.UserImage, error) {
	var out models.UserImage
	err := db.DB.QueryRowContext(ctx, `
		INSERT INTO user_images (user_id, image_url, store_key)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, image_url, store_key, created_at
	`, img.UserID, img.ImageURL, img.StoreKey).Scan(&out.ID, &out.UserID, &out.ImageURL, &out.StoreKey, &out.CreatedAt)
	if err != nil {
		log.Printf("❌ Create: Error recording user image: %v", err)
		return nil, fmt.Errorf("failed to record user image: %w", err)
	}
	log.Printf("✅ Create: Recorded image id=%s for user_id=%s", out.ID, out.UserID)
	return &out, nil
}

// ListByUser retrieves a user's uploaded images, newest first
func (r *UserImageRepository) ListByUser(ctx context.Context, userID string) ([]models.UserImage, error) {
	rows, err := db.DB.QueryContext(ctx, `
		SELECT id, user_id, image_url, store_key, created_at
		FROM user_images
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user images: %w", err)
	}
	defer rows.Close()

	images := []models.UserImage{}
	for rows.Next() {
		var img models.UserImage
		if err := rows.Scan(&img.ID, &img.UserID, &img.ImageURL, &img.StoreKey, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user images: %w", err)
	}
	return images, nil
}

// OwnsURL reports whether imageURL was uploaded by the user
func (r *UserImageRepository) OwnsURL(ctx context.Context, userID, imageURL string) (bool, error) {
	var exists bool
	err := db.DB.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM user_images WHERE user_id = $1 AND image_url = $2)
	`, userID, imageURL).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check image ownership: %w", err)
	}
	return exists, nil
}
