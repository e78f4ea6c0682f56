package repository

import (
	"context"
	"fmt"
	"log"

	"frame-storefront/db"
	"frame-storefront/models"
)

// WishlistRepository handles database operations for wishlists
type WishlistRepository struct{}

// NewWishlistRepository creates a new WishlistRepository
func NewWishlistRepository() *WishlistRepository {
	return &WishlistRepository{}
}

// Ensure WishlistRepository implements WishlistRepositoryInterface
var _ WishlistRepositoryInterface = (*WishlistRepository)(nil)

// List retrieves the user's saved products, most recently added first
func (r *WishlistRepository) List(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	query := `
		SELECT w.added_at,
		       p.id, p.name, p.description, p.price, p.category, p.image_url,
		       p.frame_type_ids, p.sub_frame_type_ids, p.size_ids, p.is_active, p.created_at, p.updated_at
		FROM wishlist_items w
		INNER JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.added_at DESC
	`

	rows, err := db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		log.Printf("❌ List: Error querying wishlist: %v", err)
		return nil, fmt.Errorf("failed to query wishlist: %w", err)
	}
	defer rows.Close()

	items := []models.WishlistItem{}
	for rows.Next() {
		var item models.WishlistItem
		var p models.Product
		err := rows.Scan(
			&item.AddedAt,
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.Category,
			&p.ImageURL,
			db.StringArray(&p.FrameTypeIDs),
			db.StringArray(&p.SubFrameTypeIDs),
			db.StringArray(&p.SizeIDs),
			&p.IsActive,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		item.ProductID = p.ID
		item.Product = &p
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wishlist: %w", err)
	}
	return items, nil
}

// Add saves a product to the user's wishlist. Adding a product twice is a no-op.
func (r *WishlistRepository) Add(ctx context.Context, userID, productID string) error {
	_, err := db.DB.ExecContext(ctx, `
		INSERT INTO wishlist_items (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`, userID, productID)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		log.Printf("❌ Add: Error adding to wishlist: %v", err)
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}
	log.Printf("💝 Add: user_id=%s saved product_id=%s", userID, productID)
	return nil
}

// Remove deletes a product from the user's wishlist
func (r *WishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		log.Printf("❌ Remove: Error removing from wishlist: %v", err)
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("wishlist item %s: %w", productID, ErrNotFound)
	}
	return nil
}
