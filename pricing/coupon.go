package pricing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"frame-storefront/models"
)

var (
	ErrCouponInactive  = errors.New("coupon is not active")
	ErrCouponExpired   = errors.New("coupon has expired")
	ErrCouponExhausted = errors.New("coupon usage limit reached")
	ErrCouponMinimum   = errors.New("cart total is below the coupon minimum")
	ErrCouponMalformed = errors.New("coupon has an invalid discount")
)

var hundred = decimal.NewFromInt(100)

// CouponDiscount returns the discount a coupon grants on subtotal at time now.
// The discount is rounded to cents and never exceeds the subtotal.
func CouponDiscount(c models.Coupon, subtotal decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	if !c.IsActive {
		return decimal.Zero, ErrCouponInactive
	}
	if c.ExpiresAt != nil && !now.Before(*c.ExpiresAt) {
		return decimal.Zero, ErrCouponExpired
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return decimal.Zero, ErrCouponExhausted
	}
	if c.MinCartTotal.Valid && subtotal.LessThan(c.MinCartTotal.Decimal) {
		return decimal.Zero, ErrCouponMinimum
	}

	var discount decimal.Decimal
	switch c.DiscountType {
	case models.CouponTypePercent:
		if !c.Amount.IsPositive() || c.Amount.GreaterThan(hundred) {
			return decimal.Zero, ErrCouponMalformed
		}
		discount = subtotal.Mul(c.Amount).Div(hundred).Round(2)
	case models.CouponTypeFlat:
		if !c.Amount.IsPositive() {
			return decimal.Zero, ErrCouponMalformed
		}
		discount = c.Amount
	default:
		return decimal.Zero, ErrCouponMalformed
	}

	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	return discount, nil
}
