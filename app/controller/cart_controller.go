package controller

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"frame-storefront/models"
	"frame-storefront/service"
)

// CartController handles HTTP requests for the signed-in user's cart
type CartController struct {
	cart service.CartServiceInterface
}

// NewCartController creates a new CartController
func NewCartController(cart service.CartServiceInterface) *CartController {
	return &CartController{cart: cart}
}

// Get handles GET /cart
func (c *CartController) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	cart, err := c.cart.Get(r.Context(), claims.UserID)
	if err != nil {
		respondServiceError(w, "GetCart", "loading cart", err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// AddItem handles POST /cart/items
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}
	log.Printf("📥 AddCartItem: Received %s request from user_id=%s", r.Method, claims.UserID)

	var req models.AddCartItemRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := c.cart.Add(r.Context(), claims.UserID, &req)
	if err != nil {
		respondServiceError(w, "AddCartItem", "adding cart item", err)
		return
	}
	respondJSON(w, http.StatusCreated, cart)
}

// UpdateItem handles PATCH /cart/items/{itemId}
func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.UpdateCartItemRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := c.cart.UpdateQuantity(r.Context(), claims.UserID, chi.URLParam(r, "itemId"), req.Quantity)
	if err != nil {
		respondServiceError(w, "UpdateCartItem", "updating cart item", err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /cart/items/{itemId}
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	cart, err := c.cart.Remove(r.Context(), claims.UserID, chi.URLParam(r, "itemId"))
	if err != nil {
		respondServiceError(w, "RemoveCartItem", "removing cart item", err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// Clear handles DELETE /cart
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := c.cart.Clear(r.Context(), claims.UserID); err != nil {
		respondServiceError(w, "ClearCart", "clearing cart", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PreviewCoupon handles POST /cart/coupon
// The coupon is checked and applied to the current cart without being redeemed.
func (c *CartController) PreviewCoupon(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.ApplyCouponRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := c.cart.PreviewCoupon(r.Context(), claims.UserID, req.Code)
	if err != nil {
		respondServiceError(w, "PreviewCoupon", "applying coupon", err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}
