package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"frame-storefront/db"
	"frame-storefront/models"
	"frame-storefront/pricing"
)

// OrderRepository handles database operations for orders
type OrderRepository struct{}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// orderTransitions lists the statuses each status may move to
var orderTransitions = map[string][]string{
	models.OrderStatusPending: {models.OrderStatusPaid, models.OrderStatusCancelled},
	models.OrderStatusPaid:    {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped: {models.OrderStatusDelivered},
}

// CanTransition reports whether an order in status from may move to status to
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

const orderColumns = `id, user_id, status, subtotal, discount, total, coupon_code, shipping_address, created_at, updated_at`

func scanOrder(row rowScanner) (*models.Order, error) {
	var o models.Order
	var couponCode sql.NullString
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Status,
		&o.Subtotal,
		&o.Discount,
		&o.Total,
		&couponCode,
		&o.ShippingAddress,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.CouponCode = couponCode.String
	return &o, nil
}

// Checkout turns the user's cart into an order in one transaction: line prices are frozen,
// the coupon is applied and its usage counted, and the cart is emptied.
func (r *OrderRepository) Checkout(ctx context.Context, userID string, req *models.CheckoutRequest, now time.Time) (*models.OrderResponse, error) {
	log.Printf("📦 Checkout: user_id=%s, coupon=%q", userID, req.CouponCode)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ Checkout: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// Concurrent checkouts for one user queue on the user row; the cart is read after the lock,
	// so a checkout that waited sees the cart the first one emptied.
	var lockedID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		log.Printf("❌ Checkout: Error locking user: %v", err)
		return nil, fmt.Errorf("failed to lock user: %w", err)
	}

	lines, err := queryCartLines(ctx, tx, userID)
	if err != nil {
		log.Printf("❌ Checkout: %v", err)
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := pricing.PriceCart(lines)
	log.Printf("💰 Checkout: %d lines, subtotal=%s", len(lines), subtotal.StringFixed(2))

	discount := decimal.Zero
	var couponCode sql.NullString
	if req.CouponCode != "" {
		coupon, err := getCouponByCode(ctx, tx, req.CouponCode, true)
		if err != nil {
			return nil, err
		}
		discount, err = pricing.CouponDiscount(*coupon, subtotal, now)
		if err != nil {
			log.Printf("❌ Checkout: Coupon %s rejected: %v", coupon.Code, err)
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `UPDATE coupons SET used_count = used_count + 1 WHERE id = $1`, coupon.ID); err != nil {
			log.Printf("❌ Checkout: Error counting coupon usage: %v", err)
			return nil, fmt.Errorf("failed to update coupon usage: %w", err)
		}
		couponCode = sql.NullString{String: coupon.Code, Valid: true}
	}
	total := subtotal.Sub(discount)

	order, err := scanOrder(tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, status, subtotal, discount, total, coupon_code, shipping_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+orderColumns,
		userID, models.OrderStatusPending, subtotal, discount, total, couponCode, req.ShippingAddress,
	))
	if err != nil {
		log.Printf("❌ Checkout: Error inserting order: %v", err)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	orderLines := make([]models.OrderLine, 0, len(lines))
	for _, line := range lines {
		ol := models.OrderLine{
			OrderID:        order.ID,
			ProductID:      line.ProductID,
			RawImageURL:    line.RawImageURL,
			IsCustom:       line.IsCustom,
			FrameTypeID:    line.FrameTypeID,
			SubFrameTypeID: line.SubFrameTypeID,
			FrameSizeID:    line.FrameSizeID,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			LineTotal:      line.LineTotal,
		}
		err := tx.QueryRowContext(ctx, `
			INSERT INTO order_lines (order_id, product_id, raw_image_url, is_custom, frame_type_id, sub_frame_type_id, frame_size_id, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`, ol.OrderID, ol.ProductID, ol.RawImageURL, ol.IsCustom, ol.FrameTypeID, ol.SubFrameTypeID, ol.FrameSizeID,
			ol.Quantity, ol.UnitPrice, ol.LineTotal).Scan(&ol.ID)
		if err != nil {
			log.Printf("❌ Checkout: Error inserting order line: %v", err)
			return nil, fmt.Errorf("failed to create order line: %w", err)
		}
		orderLines = append(orderLines, ol)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		log.Printf("❌ Checkout: Error clearing cart: %v", err)
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Checkout: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Checkout: Created order id=%s total=%s", order.ID, order.Total.StringFixed(2))
	return &models.OrderResponse{Order: *order, Lines: orderLines}, nil
}

// GetByID retrieves an order with its lines
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.OrderResponse, error) {
	order, err := scanOrder(db.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		log.Printf("❌ GetByID: Error fetching order: %v", err)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	rows, err := db.DB.QueryContext(ctx, `
		SELECT id, order_id, product_id, raw_image_url, is_custom, frame_type_id, sub_frame_type_id, frame_size_id,
		       quantity, unit_price, line_total
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		log.Printf("❌ GetByID: Error fetching order lines: %v", err)
		return nil, fmt.Errorf("failed to get order lines: %w", err)
	}
	defer rows.Close()

	lines := []models.OrderLine{}
	for rows.Next() {
		var ol models.OrderLine
		var productID, rawImage sql.NullString
		err := rows.Scan(&ol.ID, &ol.OrderID, &productID, &rawImage, &ol.IsCustom, &ol.FrameTypeID,
			&ol.SubFrameTypeID, &ol.FrameSizeID, &ol.Quantity, &ol.UnitPrice, &ol.LineTotal)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		ol.ProductID = nullString(productID)
		ol.RawImageURL = nullString(rawImage)
		lines = append(lines, ol)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order lines: %w", err)
	}

	return &models.OrderResponse{Order: *order, Lines: lines}, nil
}

// ListByUser retrieves a user's orders, newest first
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// List retrieves all orders, optionally filtered by status
func (r *OrderRepository) List(ctx context.Context, status *string) ([]models.Order, error) {
	if status != nil && *status != "" {
		return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE status = $1 ORDER BY created_at DESC`, *status)
	}
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *OrderRepository) list(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ List: Error querying orders: %v", err)
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	log.Printf("✅ List: Successfully fetched %d orders", len(orders))
	return orders, nil
}

// UpdateStatus moves an order to a new status if the transition is allowed
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status string) (*models.Order, error) {
	log.Printf("📦 UpdateStatus: order id=%s -> %s", id, status)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ UpdateStatus: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		log.Printf("❌ UpdateStatus: Error fetching order: %v", err)
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	if !CanTransition(current, status) {
		log.Printf("❌ UpdateStatus: Cannot move order id=%s from %s to %s", id, current, status)
		return nil, fmt.Errorf("%s -> %s: %w", current, status, ErrInvalidTransition)
	}

	order, err := scanOrder(tx.QueryRowContext(ctx, `
		UPDATE orders SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+orderColumns, id, status))
	if err != nil {
		log.Printf("❌ UpdateStatus: Error updating order: %v", err)
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ UpdateStatus: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ UpdateStatus: order id=%s is now %s", id, order.Status)
	return order, nil
}
