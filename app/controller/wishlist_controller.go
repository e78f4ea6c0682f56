package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"frame-storefront/models"
	"frame-storefront/repository"
)

// WishlistController handles HTTP requests for the signed-in user's wishlist
type WishlistController struct {
	repository repository.WishlistRepositoryInterface
}

// NewWishlistController creates a new WishlistController
func NewWishlistController(repo repository.WishlistRepositoryInterface) *WishlistController {
	return &WishlistController{repository: repo}
}

// List handles GET /wishlist
func (c *WishlistController) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	items, err := c.repository.List(r.Context(), claims.UserID)
	if err != nil {
		respondServiceError(w, "ListWishlist", "listing wishlist", err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// Add handles POST /wishlist
func (c *WishlistController) Add(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.AddWishlistRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := c.repository.Add(r.Context(), claims.UserID, req.ProductID); err != nil {
		respondServiceError(w, "AddWishlist", "adding to wishlist", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Remove handles DELETE /wishlist/{productId}
func (c *WishlistController) Remove(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := c.repository.Remove(r.Context(), claims.UserID, chi.URLParam(r, "productId")); err != nil {
		respondServiceError(w, "RemoveWishlist", "removing from wishlist", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
