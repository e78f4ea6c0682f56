package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"frame-storefront/db"
	"frame-storefront/models"
)

// CartRepository handles database operations for cart items
type CartRepository struct{}

// NewCartRepository creates a new CartRepository
func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// Ensure CartRepository implements CartRepositoryInterface
var _ CartRepositoryInterface = (*CartRepository)(nil)

const cartItemColumns = `id, user_id, quantity, is_custom, product_id, raw_image_url, frame_type_id, sub_frame_type_id, frame_size_id, created_at`

func scanCartItem(row rowScanner) (*models.CartItem, error) {
	var item models.CartItem
	var productID, rawImage sql.NullString
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Quantity,
		&item.IsCustom,
		&productID,
		&rawImage,
		&item.FrameTypeID,
		&item.SubFrameTypeID,
		&item.FrameSizeID,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.ProductID = nullString(productID)
	item.RawImageURL = nullString(rawImage)
	return &item, nil
}

// cartLinesQuery joins every cart line with the current price of each referenced entity.
// A reference that no longer resolves yields a NULL price.
const cartLinesQuery = `
		SELECT ci.id, ci.user_id, ci.quantity, ci.is_custom, ci.product_id, ci.raw_image_url,
		       ci.frame_type_id, ci.sub_frame_type_id, ci.frame_size_id, ci.created_at,
		       COALESCE(p.name, ''), p.price, ft.price, sft.price, fs.price
		FROM cart_items ci
		LEFT JOIN products p ON p.id = ci.product_id
		LEFT JOIN frame_types ft ON ft.id = ci.frame_type_id
		LEFT JOIN sub_frame_types sft ON sft.id = ci.sub_frame_type_id
		LEFT JOIN frame_sizes fs ON fs.id = ci.frame_size_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at, ci.id
	`

func queryCartLines(ctx context.Context, q queryer, userID string) ([]models.CartLine, error) {
	rows, err := q.QueryContext(ctx, cartLinesQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}
	defer rows.Close()

	lines := []models.CartLine{}
	for rows.Next() {
		var line models.CartLine
		var productID, rawImage sql.NullString
		err := rows.Scan(
			&line.ID,
			&line.UserID,
			&line.Quantity,
			&line.IsCustom,
			&productID,
			&rawImage,
			&line.FrameTypeID,
			&line.SubFrameTypeID,
			&line.FrameSizeID,
			&line.CreatedAt,
			&line.ProductName,
			&line.BasePrice,
			&line.FrameTypePrice,
			&line.SubFrameTypePrice,
			&line.SizePrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		line.ProductID = nullString(productID)
		line.RawImageURL = nullString(rawImage)
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart lines: %w", err)
	}
	return lines, nil
}

// ListLines retrieves the user's cart lines with component prices. Totals are not computed here.
func (r *CartRepository) ListLines(ctx context.Context, userID string) ([]models.CartLine, error) {
	lines, err := queryCartLines(ctx, db.DB, userID)
	if err != nil {
		log.Printf("❌ ListLines: %v", err)
		return nil, err
	}
	log.Printf("🛒 ListLines: user_id=%s has %d lines", userID, len(lines))
	return lines, nil
}

// AddItem adds a configured line to the cart. The size and sub-frame type must belong to the
// chosen frame type, and for product lines the frame type must be one the product allows.
func (r *CartRepository) AddItem(ctx context.Context, userID string, req *models.AddCartItemRequest) (*models.CartItem, error) {
	log.Printf("🛒 AddItem: user_id=%s, custom=%v, frame_type=%s, size=%s, qty=%d",
		userID, req.IsCustom, req.FrameTypeID, req.FrameSizeID, req.Quantity)

	if !req.IsCustom {
		if req.ProductID == nil {
			return nil, fmt.Errorf("product is required: %w", ErrInvalidReference)
		}
		var isActive, allowed bool
		err := db.DB.QueryRowContext(ctx, `
			SELECT is_active, $2::uuid = ANY(frame_type_ids)
			FROM products
			WHERE id = $1
		`, *req.ProductID, req.FrameTypeID).Scan(&isActive, &allowed)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("product %s: %w", *req.ProductID, ErrNotFound)
			}
			log.Printf("❌ AddItem: Error fetching product: %v", err)
			return nil, fmt.Errorf("failed to fetch product: %w", err)
		}
		if !isActive {
			return nil, fmt.Errorf("product %s is not active: %w", *req.ProductID, ErrInvalidReference)
		}
		if !allowed {
			return nil, fmt.Errorf("frame type %s is not offered for product %s: %w", req.FrameTypeID, *req.ProductID, ErrInvalidReference)
		}
	}

	var sizeOK, subFrameOK bool
	err := db.DB.QueryRowContext(ctx, `
		SELECT
			EXISTS (SELECT 1 FROM frame_sizes WHERE id = $2 AND frame_type_id = $1),
			EXISTS (SELECT 1 FROM sub_frame_types WHERE id = $3 AND frame_type_id = $1)
	`, req.FrameTypeID, req.FrameSizeID, req.SubFrameTypeID).Scan(&sizeOK, &subFrameOK)
	if err != nil {
		log.Printf("❌ AddItem: Error checking frame configuration: %v", err)
		return nil, fmt.Errorf("failed to check frame configuration: %w", err)
	}
	if !sizeOK {
		return nil, fmt.Errorf("frame size %s does not belong to frame type %s: %w", req.FrameSizeID, req.FrameTypeID, ErrInvalidReference)
	}
	if !subFrameOK {
		return nil, fmt.Errorf("sub-frame type %s does not belong to frame type %s: %w", req.SubFrameTypeID, req.FrameTypeID, ErrInvalidReference)
	}

	var productID, rawImage any
	if req.IsCustom {
		rawImage = *req.RawImageURL
	} else {
		productID = *req.ProductID
	}

	query := `
		INSERT INTO cart_items (user_id, quantity, is_custom, product_id, raw_image_url, frame_type_id, sub_frame_type_id, frame_size_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + cartItemColumns

	item, err := scanCartItem(db.DB.QueryRowContext(ctx, query,
		userID, req.Quantity, req.IsCustom, productID, rawImage,
		req.FrameTypeID, req.SubFrameTypeID, req.FrameSizeID,
	))
	if err != nil {
		if db.IsCheckViolation(err) {
			return nil, fmt.Errorf("cart line must reference exactly one of product or raw image: %w", ErrInvalidReference)
		}
		if db.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("cart line references a missing record: %w", ErrInvalidReference)
		}
		log.Printf("❌ AddItem: Error inserting cart item: %v", err)
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	log.Printf("✅ AddItem: Added cart item id=%s", item.ID)
	return item, nil
}

// UpdateQuantity sets the quantity of one of the user's cart lines
func (r *CartRepository) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	query := `
		UPDATE cart_items SET quantity = $3
		WHERE id = $1 AND user_id = $2
		RETURNING ` + cartItemColumns

	item, err := scanCartItem(db.DB.QueryRowContext(ctx, query, itemID, userID, quantity))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
		}
		log.Printf("❌ UpdateQuantity: Error updating cart item: %v", err)
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	log.Printf("✅ UpdateQuantity: cart item id=%s qty=%d", itemID, quantity)
	return item, nil
}

// RemoveItem deletes one of the user's cart lines
func (r *CartRepository) RemoveItem(ctx context.Context, userID, itemID string) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		log.Printf("❌ RemoveItem: Error deleting cart item: %v", err)
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
	}
	return nil
}

// Clear deletes every line in the user's cart
func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		log.Printf("❌ Clear: Error clearing cart: %v", err)
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	affected, _ := result.RowsAffected()
	log.Printf("✅ Clear: Removed %d lines from cart of user_id=%s", affected, userID)
	return nil
}
