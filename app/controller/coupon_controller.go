package controller

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"frame-storefront/models"
	"frame-storefront/repository"
)

var hundred = decimal.NewFromInt(100)

// CouponController handles HTTP requests for coupons
type CouponController struct {
	repository repository.CouponRepositoryInterface
}

// NewCouponController creates a new CouponController
func NewCouponController(repo repository.CouponRepositoryInterface) *CouponController {
	return &CouponController{repository: repo}
}

// Create handles POST /admin/coupons
func (c *CouponController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateCoupon: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateCouponRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Amount.IsPositive() {
		respondError(w, http.StatusBadRequest, "amount must be greater than 0")
		return
	}
	if req.DiscountType == models.CouponTypePercent && req.Amount.GreaterThan(hundred) {
		respondError(w, http.StatusBadRequest, "percent amount cannot exceed 100")
		return
	}
	if req.MinCartTotal.Valid && req.MinCartTotal.Decimal.IsNegative() {
		respondError(w, http.StatusBadRequest, "minCartTotal cannot be negative")
		return
	}

	coupon, err := c.repository.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, "CreateCoupon", "creating coupon", err)
		return
	}
	log.Printf("🎟️  CreateCoupon: coupon %s created", coupon.Code)
	respondJSON(w, http.StatusCreated, coupon)
}

// List handles GET /admin/coupons
func (c *CouponController) List(w http.ResponseWriter, r *http.Request) {
	coupons, err := c.repository.List(r.Context())
	if err != nil {
		respondServiceError(w, "ListCoupons", "listing coupons", err)
		return
	}
	respondJSON(w, http.StatusOK, coupons)
}

// Deactivate handles POST /admin/coupons/{id}/deactivate
func (c *CouponController) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := c.repository.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, "DeactivateCoupon", "deactivating coupon", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
