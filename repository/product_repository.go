package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"frame-storefront/db"
	"frame-storefront/models"
)

// ProductRepository handles database operations for products
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

const productColumns = `id, name, description, price, category, image_url, frame_type_ids, sub_frame_type_ids, size_ids, is_active, created_at, updated_at`

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.ImageURL,
		db.StringArray(&p.FrameTypeIDs),
		db.StringArray(&p.SubFrameTypeIDs),
		db.StringArray(&p.SizeIDs),
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a product
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	log.Printf("🛍️  Create: Creating product name=%s, frame_types=%d, sizes=%d", p.Name, len(p.FrameTypeIDs), len(p.SizeIDs))

	query := `
		INSERT INTO products (name, description, price, category, image_url, frame_type_ids, sub_frame_type_ids, size_ids, is_active)
		VALUES ($1, $2, $3, $4, $5, $6::uuid[], $7::uuid[], $8::uuid[], $9)
		RETURNING ` + productColumns

	created, err := scanProduct(db.DB.QueryRowContext(ctx, query,
		strings.TrimSpace(p.Name),
		p.Description,
		p.Price,
		strings.TrimSpace(p.Category),
		p.ImageURL,
		emptyIfNil(p.FrameTypeIDs),
		emptyIfNil(p.SubFrameTypeIDs),
		emptyIfNil(p.SizeIDs),
		p.IsActive,
	))
	if err != nil {
		log.Printf("❌ Create: Error creating product: %v", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	log.Printf("✅ Create: Successfully created product id=%s", created.ID)
	return created, nil
}

// GetByID retrieves a product by id
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		log.Printf("❌ GetByID: Error fetching product: %v", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// List retrieves products matching the filters, newest first
func (r *ProductRepository) List(ctx context.Context, filters models.ProductFilterParams) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}
	argPos := 1

	if filters.Category != nil && strings.TrimSpace(*filters.Category) != "" {
		query += fmt.Sprintf(" AND LOWER(category) = LOWER($%d)", argPos)
		args = append(args, strings.TrimSpace(*filters.Category))
		argPos++
	}
	if filters.ActiveOnly {
		query += " AND is_active = TRUE"
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ List: Error querying products: %v", err)
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	log.Printf("✓ List: Found %d products", len(products))
	return products, nil
}

// Update replaces every field of an existing product
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	log.Printf("🛍️  Update: Updating product id=%s, sizes=%d", p.ID, len(p.SizeIDs))

	query := `
		UPDATE products
		SET name = $2,
		    description = $3,
		    price = $4,
		    category = $5,
		    image_url = $6,
		    frame_type_ids = $7::uuid[],
		    sub_frame_type_ids = $8::uuid[],
		    size_ids = $9::uuid[],
		    is_active = $10,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	updated, err := scanProduct(db.DB.QueryRowContext(ctx, query,
		p.ID,
		strings.TrimSpace(p.Name),
		p.Description,
		p.Price,
		strings.TrimSpace(p.Category),
		p.ImageURL,
		emptyIfNil(p.FrameTypeIDs),
		emptyIfNil(p.SubFrameTypeIDs),
		emptyIfNil(p.SizeIDs),
		p.IsActive,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", p.ID, ErrNotFound)
		}
		log.Printf("❌ Update: Error updating product: %v", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	log.Printf("✅ Update: Successfully updated product id=%s", updated.ID)
	return updated, nil
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		log.Printf("❌ Delete: Error deleting product: %v", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	log.Printf("✅ Delete: Successfully deleted product id=%s", id)
	return nil
}
