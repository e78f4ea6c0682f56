package models

import "time"

// WishlistItem represents a product saved by a user
type WishlistItem struct {
	ProductID string    `json:"productId"`
	Product   *Product  `json:"product,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}

// AddWishlistRequest represents the request body for adding a product to the wishlist
type AddWishlistRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
}
