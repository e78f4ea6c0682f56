package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"frame-storefront/models"
	"frame-storefront/pricing"
	"frame-storefront/repository"
)

// ErrInvalidCartItem is returned when a line does not reference exactly one of product or image
var ErrInvalidCartItem = errors.New("invalid cart item")

// CartService prices and edits a user's cart
type CartService struct {
	cart    repository.CartRepositoryInterface
	coupons repository.CouponRepositoryInterface
	images  repository.UserImageRepositoryInterface
	now     func() time.Time
}

// NewCartService creates a new CartService
func NewCartService(cart repository.CartRepositoryInterface, coupons repository.CouponRepositoryInterface, images repository.UserImageRepositoryInterface) *CartService {
	return &CartService{cart: cart, coupons: coupons, images: images, now: time.Now}
}

// ValidateCartItem checks that a custom line carries only a raw image and a regular line only a product
func ValidateCartItem(req *models.AddCartItemRequest) error {
	hasProduct := req.ProductID != nil && *req.ProductID != ""
	hasImage := req.RawImageURL != nil && *req.RawImageURL != ""

	if req.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidCartItem)
	}
	if req.IsCustom {
		if !hasImage || hasProduct {
			return fmt.Errorf("%w: custom items need a raw image and no product", ErrInvalidCartItem)
		}
		return nil
	}
	if !hasProduct || hasImage {
		return fmt.Errorf("%w: items need a product and no raw image", ErrInvalidCartItem)
	}
	return nil
}

// Get returns the priced cart
func (s *CartService) Get(ctx context.Context, userID string) (*models.CartResponse, error) {
	lines, err := s.cart.ListLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	subtotal := pricing.PriceCart(lines)
	return &models.CartResponse{
		Items:    lines,
		Subtotal: subtotal,
		Discount: decimal.Zero,
		Total:    subtotal,
	}, nil
}

// Add validates and stores a new line and returns the updated cart
func (s *CartService) Add(ctx context.Context, userID string, req *models.AddCartItemRequest) (*models.CartResponse, error) {
	if err := ValidateCartItem(req); err != nil {
		return nil, err
	}

	if req.IsCustom {
		owned, err := s.images.OwnsURL(ctx, userID, *req.RawImageURL)
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, fmt.Errorf("%w: raw image was not uploaded by this user", ErrInvalidCartItem)
		}
	}

	item, err := s.cart.AddItem(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	log.Printf("🛒 Add: user_id=%s added item id=%s (custom=%t, qty=%d)", userID, item.ID, item.IsCustom, item.Quantity)
	return s.Get(ctx, userID)
}

// UpdateQuantity changes the quantity of one line
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*models.CartResponse, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidCartItem)
	}
	if _, err := s.cart.UpdateQuantity(ctx, userID, itemID, quantity); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// Remove deletes one line
func (s *CartService) Remove(ctx context.Context, userID, itemID string) (*models.CartResponse, error) {
	if err := s.cart.RemoveItem(ctx, userID, itemID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.cart.Clear(ctx, userID)
}

// PreviewCoupon prices the cart with a coupon applied without redeeming it
func (s *CartService) PreviewCoupon(ctx context.Context, userID, code string) (*models.CartResponse, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	coupon, err := s.coupons.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	discount, err := pricing.CouponDiscount(*coupon, cart.Subtotal, s.now())
	if err != nil {
		log.Printf("⚠️  PreviewCoupon: coupon %s rejected for user_id=%s: %v", coupon.Code, userID, err)
		return nil, err
	}

	cart.Coupon = coupon.Code
	cart.Discount = discount
	cart.Total = cart.Subtotal.Sub(discount)
	log.Printf("🎟️  PreviewCoupon: %s gives %s off %s", coupon.Code, discount.StringFixed(2), cart.Subtotal.StringFixed(2))
	return cart, nil
}
