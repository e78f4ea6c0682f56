package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coupon discount types
const (
	CouponTypePercent = "percent"
	CouponTypeFlat    = "flat"
)

// Coupon represents a discount code
type Coupon struct {
	ID           string              `json:"id"`
	Code         string              `json:"code"`
	DiscountType string              `json:"discountType"`
	Amount       decimal.Decimal     `json:"amount"`
	MinCartTotal decimal.NullDecimal `json:"minCartTotal"`
	ExpiresAt    *time.Time          `json:"expiresAt,omitempty"`
	UsageLimit   *int                `json:"usageLimit,omitempty"`
	UsedCount    int                 `json:"usedCount"`
	IsActive     bool                `json:"isActive"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// CreateCouponRequest represents the request body for creating a coupon
// Example: {"code": "WELCOME10", "discountType": "percent", "amount": "10"}
type CreateCouponRequest struct {
	Code         string              `json:"code" validate:"required,alphanum,max=40"`
	DiscountType string              `json:"discountType" validate:"required,oneof=percent flat"`
	Amount       decimal.Decimal     `json:"amount"`
	MinCartTotal decimal.NullDecimal `json:"minCartTotal"`
	ExpiresAt    *time.Time          `json:"expiresAt,omitempty"`
	UsageLimit   *int                `json:"usageLimit,omitempty" validate:"omitempty,min=1"`
}
