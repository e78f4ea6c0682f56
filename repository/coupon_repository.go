package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"frame-storefront/db"
	"frame-storefront/models"
)

// CouponRepository handles database operations for coupons
type CouponRepository struct{}

// NewCouponRepository creates a new CouponRepository
func NewCouponRepository() *CouponRepository {
	return &CouponRepository{}
}

// Ensure CouponRepository implements CouponRepositoryInterface
var _ CouponRepositoryInterface = (*CouponRepository)(nil)

const couponColumns = `id, code, discount_type, amount, min_cart_total, expires_at, usage_limit, used_count, is_active, created_at`

func scanCoupon(row rowScanner) (*models.Coupon, error) {
	var c models.Coupon
	var expiresAt sql.NullTime
	var usageLimit sql.NullInt64
	err := row.Scan(
		&c.ID,
		&c.Code,
		&c.DiscountType,
		&c.Amount,
		&c.MinCartTotal,
		&expiresAt,
		&usageLimit,
		&c.UsedCount,
		&c.IsActive,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		c.ExpiresAt = &t
	}
	if usageLimit.Valid {
		n := int(usageLimit.Int64)
		c.UsageLimit = &n
	}
	return &c, nil
}

// normalizeCouponCode upper-cases codes so lookups are case-insensitive
func normalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Create inserts a coupon
func (r *CouponRepository) Create(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, error) {
	code := normalizeCouponCode(req.Code)
	log.Printf("🎟️  Create: Creating coupon code=%s, type=%s, amount=%s", code, req.DiscountType, req.Amount)

	var expiresAt sql.NullTime
	if req.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *req.ExpiresAt, Valid: true}
	}
	var usageLimit sql.NullInt64
	if req.UsageLimit != nil {
		usageLimit = sql.NullInt64{Int64: int64(*req.UsageLimit), Valid: true}
	}

	query := `
		INSERT INTO coupons (code, discount_type, amount, min_cart_total, expires_at, usage_limit)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + couponColumns

	c, err := scanCoupon(db.DB.QueryRowContext(ctx, query,
		code, req.DiscountType, req.Amount, req.MinCartTotal, expiresAt, usageLimit,
	))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("coupon %s: %w", code, ErrDuplicate)
		}
		log.Printf("❌ Create: Error creating coupon: %v", err)
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	log.Printf("✅ Create: Successfully created coupon id=%s", c.ID)
	return c, nil
}

// List retrieves all coupons, newest first
func (r *CouponRepository) List(ctx context.Context) ([]models.Coupon, error) {
	rows, err := db.DB.QueryContext(ctx, `SELECT `+couponColumns+` FROM coupons ORDER BY created_at DESC`)
	if err != nil {
		log.Printf("❌ List: Error querying coupons: %v", err)
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	coupons := []models.Coupon{}
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating coupons: %w", err)
	}
	return coupons, nil
}

// GetByCode retrieves a coupon by its code
func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	return getCouponByCode(ctx, db.DB, code, false)
}

func getCouponByCode(ctx context.Context, q queryer, code string, forUpdate bool) (*models.Coupon, error) {
	code = normalizeCouponCode(code)
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	c, err := scanCoupon(q.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("coupon %s: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	return c, nil
}

// Deactivate disables a coupon so it can no longer be applied
func (r *CouponRepository) Deactivate(ctx context.Context, id string) error {
	result, err := db.DB.ExecContext(ctx, `UPDATE coupons SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		log.Printf("❌ Deactivate: Error deactivating coupon: %v", err)
		return fmt.Errorf("failed to deactivate coupon: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("coupon %s: %w", id, ErrNotFound)
	}
	log.Printf("✅ Deactivate: Coupon id=%s deactivated", id)
	return nil
}
