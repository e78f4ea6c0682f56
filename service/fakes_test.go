package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"frame-storefront/catalog"
	"frame-storefront/models"
	"frame-storefront/repository"
)

type memoryImageStore struct {
	mu    sync.Mutex
	saved map[string][]byte
	err   error
}

func newMemoryImageStore() *memoryImageStore {
	return &memoryImageStore{saved: map[string][]byte{}}
}

func (s *memoryImageStore) Save(ctx context.Context, key string, contentType string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.saved[key] = data
	return "https://cdn.test/" + key, nil
}

type fakeUserImageRepo struct {
	mu     sync.Mutex
	images []models.UserImage
}

func (r *fakeUserImageRepo) Create(ctx context.Context, img *models.UserImage) (*models.UserImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := *img
	out.ID = fmt.Sprintf("img-%d", len(r.images)+1)
	out.CreatedAt = time.Now()
	r.images = append(r.images, out)
	return &out, nil
}

func (r *fakeUserImageRepo) ListByUser(ctx context.Context, userID string) ([]models.UserImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.UserImage{}
	for _, img := range r.images {
		if img.UserID == userID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (r *fakeUserImageRepo) OwnsURL(ctx context.Context, userID, imageURL string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, img := range r.images {
		if img.UserID == userID && img.ImageURL == imageURL {
			return true, nil
		}
	}
	return false, nil
}

// fakeCatalogLoader serves a fixed index
type fakeCatalogLoader struct {
	idx catalog.Index
}

func (l *fakeCatalogLoader) LoadFrameTypesWithSizes(ctx context.Context, ids []string) (catalog.Index, error) {
	out := catalog.Index{}
	for _, id := range ids {
		if e, ok := l.idx[id]; ok {
			out[id] = e
		}
	}
	return out, nil
}

func (l *fakeCatalogLoader) LoadAll(ctx context.Context) (catalog.Index, error) {
	return l.idx, nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]models.Product
	next     int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]models.Product{}}
}

func (r *fakeProductRepo) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	out := *p
	out.ID = fmt.Sprintf("product-%d", r.next)
	r.products[out.ID] = out
	return &out, nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, repository.ErrNotFound)
	}
	return &p, nil
}

func (r *fakeProductRepo) List(ctx context.Context, filters models.ProductFilterParams) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Product{}
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return nil, fmt.Errorf("product %s: %w", p.ID, repository.ErrNotFound)
	}
	r.products[p.ID] = *p
	out := *p
	return &out, nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}
