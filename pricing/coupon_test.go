package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frame-storefront/models"
)

func TestCouponDiscount_Percent(t *testing.T) {
	c := models.Coupon{DiscountType: models.CouponTypePercent, Amount: decimal.NewFromInt(10), IsActive: true}

	discount, err := CouponDiscount(c, decimal.RequireFromString("1234.56"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, "123.46", discount.StringFixed(2))
}

func TestCouponDiscount_FlatCappedAtSubtotal(t *testing.T) {
	c := models.Coupon{DiscountType: models.CouponTypeFlat, Amount: decimal.NewFromInt(500), IsActive: true}

	discount, err := CouponDiscount(c, decimal.NewFromInt(300), time.Now())
	require.NoError(t, err)
	assert.True(t, discount.Equal(decimal.NewFromInt(300)))
}

func TestCouponDiscount_Rejections(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	limit := 3

	base := models.Coupon{DiscountType: models.CouponTypeFlat, Amount: decimal.NewFromInt(50), IsActive: true}

	inactive := base
	inactive.IsActive = false

	expired := base
	expired.ExpiresAt = &past

	exhausted := base
	exhausted.UsageLimit = &limit
	exhausted.UsedCount = 3

	minimum := base
	minimum.MinCartTotal = decimal.NewNullDecimal(decimal.NewFromInt(1000))

	malformed := base
	malformed.DiscountType = models.CouponTypePercent
	malformed.Amount = decimal.NewFromInt(150)

	cases := map[string]struct {
		coupon models.Coupon
		err    error
	}{
		"inactive":  {inactive, ErrCouponInactive},
		"expired":   {expired, ErrCouponExpired},
		"exhausted": {exhausted, ErrCouponExhausted},
		"minimum":   {minimum, ErrCouponMinimum},
		"malformed": {malformed, ErrCouponMalformed},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := CouponDiscount(tc.coupon, decimal.NewFromInt(200), now)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
