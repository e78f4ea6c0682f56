package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one configured line in a user's cart.
// Exactly one of ProductID and RawImageURL is set, governed by IsCustom.
type CartItem struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Quantity       int       `json:"quantity"`
	IsCustom       bool      `json:"isCustom"`
	ProductID      *string   `json:"productId,omitempty"`
	RawImageURL    *string   `json:"rawImage,omitempty"`
	FrameTypeID    string    `json:"frameType"`
	SubFrameTypeID string    `json:"subFrameType"`
	FrameSizeID    string    `json:"frameSize"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CartLine is a cart item joined with the prices of everything it references.
// A price is invalid when the referenced entity no longer exists.
type CartLine struct {
	CartItem
	ProductName       string              `json:"productName,omitempty"`
	BasePrice         decimal.NullDecimal `json:"basePrice"`
	FrameTypePrice    decimal.NullDecimal `json:"frameTypePrice"`
	SubFrameTypePrice decimal.NullDecimal `json:"subFrameTypePrice"`
	SizePrice         decimal.NullDecimal `json:"sizePrice"`
	UnitPrice         decimal.Decimal     `json:"unitPrice"`
	LineTotal         decimal.Decimal     `json:"lineTotal"`
}

// CartResponse is the cart view returned to clients
type CartResponse struct {
	Items    []CartLine      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
	Coupon   string          `json:"coupon,omitempty"`
}

// AddCartItemRequest represents the request body for adding a line to the cart
// Example: {"quantity": 2, "isCustom": false, "productId": "...", "frameType": "...", "subFrameType": "...", "frameSize": "..."}
type AddCartItemRequest struct {
	Quantity       int     `json:"quantity" validate:"required,min=1,max=99"`
	IsCustom       bool    `json:"isCustom"`
	ProductID      *string `json:"productId,omitempty" validate:"omitempty,uuid"`
	RawImageURL    *string `json:"rawImage,omitempty" validate:"omitempty,url"`
	FrameTypeID    string  `json:"frameType" validate:"required,uuid"`
	SubFrameTypeID string  `json:"subFrameType" validate:"required,uuid"`
	FrameSizeID    string  `json:"frameSize" validate:"required,uuid"`
}

// UpdateCartItemRequest represents the request body for changing a line quantity
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1,max=99"`
}

// ApplyCouponRequest represents the request body for previewing a coupon
type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required,max=40"`
}
