package service

import (
	"context"
	"log"

	"frame-storefront/catalog"
	"frame-storefront/models"
	"frame-storefront/repository"
)

// SizeResolver derives product sizes from frame type ids
type SizeResolver interface {
	ResolveSizes(ctx context.Context, frameTypeIDs []string) ([]string, error)
}

// Ensure catalog.SizeResolver implements SizeResolver
var _ SizeResolver = (*catalog.SizeResolver)(nil)

// ProductService manages products. Sizes are always derived from the product's frame types
// on the server; whatever a client sends for sizes is never stored.
type ProductService struct {
	products repository.ProductRepositoryInterface
	sizes    repository.FrameSizeRepositoryInterface
	resolver SizeResolver
}

// NewProductService creates a new ProductService
func NewProductService(products repository.ProductRepositoryInterface, sizes repository.FrameSizeRepositoryInterface, resolver SizeResolver) *ProductService {
	return &ProductService{products: products, sizes: sizes, resolver: resolver}
}

func productFromRequest(req *models.ProductRequest) *models.Product {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return &models.Product{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Category:        req.Category,
		ImageURL:        req.ImageURL,
		FrameTypeIDs:    dedupe(req.FrameTypeIDs),
		SubFrameTypeIDs: dedupe(req.SubFrameTypeIDs),
		IsActive:        isActive,
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Create derives the product's sizes and stores it
func (s *ProductService) Create(ctx context.Context, req *models.ProductRequest) (*models.Product, error) {
	if req.Price.IsNegative() {
		return nil, repository.ErrNegativePrice
	}

	p := productFromRequest(req)
	sizes, err := s.resolver.ResolveSizes(ctx, p.FrameTypeIDs)
	if err != nil {
		return nil, err
	}
	p.SizeIDs = sizes

	log.Printf("🛍️  Create: product %q resolved %d sizes from %d frame types", p.Name, len(sizes), len(p.FrameTypeIDs))
	return s.products.Create(ctx, p)
}

// Update replaces a product and derives its sizes again
func (s *ProductService) Update(ctx context.Context, id string, req *models.ProductRequest) (*models.Product, error) {
	if req.Price.IsNegative() {
		return nil, repository.ErrNegativePrice
	}

	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p := productFromRequest(req)
	p.ID = existing.ID
	if req.IsActive == nil {
		p.IsActive = existing.IsActive
	}

	sizes, err := s.resolver.ResolveSizes(ctx, p.FrameTypeIDs)
	if err != nil {
		return nil, err
	}
	p.SizeIDs = sizes

	log.Printf("🛍️  Update: product id=%s resolved %d sizes", id, len(sizes))
	return s.products.Update(ctx, p)
}

// Get returns a product by id
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// List returns products matching the filters
func (s *ProductService) List(ctx context.Context, filters models.ProductFilterParams) ([]models.Product, error) {
	return s.products.List(ctx, filters)
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

// Sizes returns the size records a product can be ordered in
func (s *ProductService) Sizes(ctx context.Context, id string) ([]models.FrameSize, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.sizes.ListByIDs(ctx, p.SizeIDs)
}
