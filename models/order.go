package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order represents a placed order
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Status          string          `json:"status"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`
	CouponCode      string          `json:"couponCode,omitempty"`
	ShippingAddress string          `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OrderLine is a frozen copy of a cart line at checkout time
type OrderLine struct {
	ID             string          `json:"id"`
	OrderID        string          `json:"orderId"`
	ProductID      *string         `json:"productId,omitempty"`
	RawImageURL    *string         `json:"rawImage,omitempty"`
	IsCustom       bool            `json:"isCustom"`
	FrameTypeID    string          `json:"frameType"`
	SubFrameTypeID string          `json:"subFrameType"`
	FrameSizeID    string          `json:"frameSize"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	LineTotal      decimal.Decimal `json:"lineTotal"`
}

// OrderResponse is an order with its lines
type OrderResponse struct {
	Order
	Lines []OrderLine `json:"lines"`
}

// CheckoutRequest represents the request body for placing an order from the cart
type CheckoutRequest struct {
	CouponCode      string `json:"couponCode" validate:"omitempty,max=40"`
	ShippingAddress string `json:"shippingAddress" validate:"required,max=1000"`
}

// UpdateOrderStatusRequest represents the request body for an admin status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid shipped delivered cancelled"`
}
