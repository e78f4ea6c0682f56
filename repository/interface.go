package repository

import (
	"context"
	"time"

	"frame-storefront/catalog"
	"frame-storefront/models"
)

// CatalogRepositoryInterface defines the contract for batched frame catalog reads
type CatalogRepositoryInterface interface {
	catalog.Loader
	LoadAll(ctx context.Context) (catalog.Index, error)
}

// FrameTypeRepositoryInterface defines the contract for frame type operations
type FrameTypeRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateFrameTypeRequest) (*models.FrameType, error)
	GetByID(ctx context.Context, id string) (*models.FrameType, error)
	List(ctx context.Context) ([]models.FrameType, error)
	Update(ctx context.Context, id string, req *models.UpdateFrameTypeRequest) (*models.FrameType, error)
	Delete(ctx context.Context, id string) error
	IDsByName(ctx context.Context, names []string) (map[string]string, error)
}

// SubFrameTypeRepositoryInterface defines the contract for sub-frame type operations
type SubFrameTypeRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateSubFrameTypeRequest) (*models.SubFrameType, error)
	GetByID(ctx context.Context, id string) (*models.SubFrameType, error)
	List(ctx context.Context, frameTypeID *string) ([]models.SubFrameType, error)
	Update(ctx context.Context, id string, req *models.UpdateSubFrameTypeRequest) (*models.SubFrameType, error)
	Delete(ctx context.Context, id string) error
	AddImage(ctx context.Context, id string, imageURL string) (*models.SubFrameType, error)
	IDsByName(ctx context.Context, names []string) (map[string]string, error)
}

// FrameSizeRepositoryInterface defines the contract for frame size operations
type FrameSizeRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateFrameSizeRequest) (*models.FrameSize, error)
	GetByID(ctx context.Context, id string) (*models.FrameSize, error)
	ListByFrameType(ctx context.Context, frameTypeID string) ([]models.FrameSize, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.FrameSize, error)
	Update(ctx context.Context, id string, req *models.UpdateFrameSizeRequest) (*models.FrameSize, error)
	Delete(ctx context.Context, id string) error
}

// ProductRepositoryInterface defines the contract for product operations.
// SizeIDs on the product passed in must already be resolved.
type ProductRepositoryInterface interface {
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, filters models.ProductFilterParams) ([]models.Product, error)
	Update(ctx context.Context, p *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// CartRepositoryInterface defines the contract for cart operations
type CartRepositoryInterface interface {
	ListLines(ctx context.Context, userID string) ([]models.CartLine, error)
	AddItem(ctx context.Context, userID string, req *models.AddCartItemRequest) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
}

// WishlistRepositoryInterface defines the contract for wishlist operations
type WishlistRepositoryInterface interface {
	List(ctx context.Context, userID string) ([]models.WishlistItem, error)
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
}

// CouponRepositoryInterface defines the contract for coupon operations
type CouponRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, error)
	List(ctx context.Context) ([]models.Coupon, error)
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	Deactivate(ctx context.Context, id string) error
}

// OrderRepositoryInterface defines the contract for order operations
type OrderRepositoryInterface interface {
	Checkout(ctx context.Context, userID string, req *models.CheckoutRequest, now time.Time) (*models.OrderResponse, error)
	GetByID(ctx context.Context, id string) (*models.OrderResponse, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	List(ctx context.Context, status *string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status string) (*models.Order, error)
}

// UserRepositoryInterface defines the contract for user account operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// UserImageRepositoryInterface defines the contract for uploaded image records
type UserImageRepositoryInterface interface {
	Create(ctx context.Context, img *models.UserImage) (*models.UserImage, error)
	ListByUser(ctx context.Context, userID string) ([]models.UserImage, error)
	OwnsURL(ctx context.Context, userID, imageURL string) (bool, error)
}
