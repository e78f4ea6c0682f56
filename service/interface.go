package service

import (
	"context"
	"io"

	"frame-storefront/models"
)

// AuthServiceInterface defines the contract for account and token operations
type AuthServiceInterface interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	ParseToken(tokenString string) (*Claims, error)
	Me(ctx context.Context, userID string) (*models.User, error)
}

// ProductServiceInterface defines the contract for product operations
type ProductServiceInterface interface {
	Create(ctx context.Context, req *models.ProductRequest) (*models.Product, error)
	Update(ctx context.Context, id string, req *models.ProductRequest) (*models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, filters models.ProductFilterParams) ([]models.Product, error)
	Delete(ctx context.Context, id string) error
	Sizes(ctx context.Context, id string) ([]models.FrameSize, error)
}

// ProductImportServiceInterface defines the contract for spreadsheet imports
type ProductImportServiceInterface interface {
	Import(ctx context.Context, r io.Reader) (*models.ImportResult, error)
}

// CartServiceInterface defines the contract for cart operations
type CartServiceInterface interface {
	Get(ctx context.Context, userID string) (*models.CartResponse, error)
	Add(ctx context.Context, userID string, req *models.AddCartItemRequest) (*models.CartResponse, error)
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*models.CartResponse, error)
	Remove(ctx context.Context, userID, itemID string) (*models.CartResponse, error)
	Clear(ctx context.Context, userID string) error
	PreviewCoupon(ctx context.Context, userID, code string) (*models.CartResponse, error)
}

// OrderServiceInterface defines the contract for order operations
type OrderServiceInterface interface {
	Checkout(ctx context.Context, userID string, req *models.CheckoutRequest) (*models.OrderResponse, error)
	Get(ctx context.Context, userID, role, orderID string) (*models.OrderResponse, error)
	ListMine(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context, status *string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error)
}

// UploadServiceInterface defines the contract for chunked image uploads
type UploadServiceInterface interface {
	Start(ctx context.Context, userID string, req *models.StartUploadRequest) (*models.UploadSession, error)
	PutChunk(ctx context.Context, userID, sessionID string, index int, data []byte) (*models.UploadSession, error)
	Complete(ctx context.Context, userID, sessionID string) (*models.UserImage, error)
	Abort(ctx context.Context, userID, sessionID string) error
	ListImages(ctx context.Context, userID string) ([]models.UserImage, error)
}

// FrameImageServiceInterface defines the contract for sub-frame type showcase images
type FrameImageServiceInterface interface {
	AttachImage(ctx context.Context, subFrameTypeID string, data []byte) (*models.SubFrameType, error)
}

// ReportServiceInterface defines the contract for the frame catalog report
type ReportServiceInterface interface {
	FrameCatalog(ctx context.Context) ([]models.FrameCatalogEntry, error)
	RenderHTML(ctx context.Context) (string, error)
	GeneratePDF(ctx context.Context) ([]byte, error)
}

var (
	_ AuthServiceInterface          = (*AuthService)(nil)
	_ ProductServiceInterface       = (*ProductService)(nil)
	_ ProductImportServiceInterface = (*ProductImportService)(nil)
	_ CartServiceInterface          = (*CartService)(nil)
	_ OrderServiceInterface         = (*OrderService)(nil)
	_ UploadServiceInterface        = (*UploadService)(nil)
	_ FrameImageServiceInterface    = (*FrameImageService)(nil)
	_ ReportServiceInterface        = (*ReportService)(nil)
)
