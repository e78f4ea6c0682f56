package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"frame-storefront/catalog"
	"frame-storefront/db"
)

// CatalogRepository reads frame types together with the sizes they reference
type CatalogRepository struct{}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

const catalogSelect = `
		SELECT ft.id, ft.name, ft.price, fs.id, fs.name, fs.price
		FROM frame_types ft
		LEFT JOIN frame_sizes fs ON fs.id = ANY(ft.frame_size_ids)
	`

const catalogOrder = `
		ORDER BY ft.name, ft.id, fs.name, fs.id
	`

// LoadFrameTypesWithSizes loads the requested frame types and their sizes in a single query.
// Ids that do not exist are simply absent from the returned index.
func (r *CatalogRepository) LoadFrameTypesWithSizes(ctx context.Context, ids []string) (catalog.Index, error) {
	if len(ids) == 0 {
		return catalog.Index{}, nil
	}

	log.Printf("🔍 LoadFrameTypesWithSizes: loading %d frame types", len(ids))
	query := catalogSelect + `WHERE ft.id = ANY($1::uuid[])` + catalogOrder
	rows, err := db.DB.QueryContext(ctx, query, ids)
	if err != nil {
		log.Printf("❌ LoadFrameTypesWithSizes: Error querying frame types: %v", err)
		return nil, fmt.Errorf("failed to query frame types with sizes: %w", err)
	}
	defer rows.Close()

	return scanCatalog(rows)
}

// LoadAll loads every frame type with its sizes
func (r *CatalogRepository) LoadAll(ctx context.Context) (catalog.Index, error) {
	rows, err := db.DB.QueryContext(ctx, catalogSelect+catalogOrder)
	if err != nil {
		log.Printf("❌ LoadAll: Error querying frame catalog: %v", err)
		return nil, fmt.Errorf("failed to query frame catalog: %w", err)
	}
	defer rows.Close()

	return scanCatalog(rows)
}

func scanCatalog(rows *sql.Rows) (catalog.Index, error) {
	idx := catalog.Index{}
	for rows.Next() {
		var (
			ftID, ftName string
			ftPrice      decimal.Decimal
			sizeID       sql.NullString
			sizeName     sql.NullString
			sizePrice    decimal.NullDecimal
		)
		if err := rows.Scan(&ftID, &ftName, &ftPrice, &sizeID, &sizeName, &sizePrice); err != nil {
			return nil, fmt.Errorf("failed to scan frame catalog row: %w", err)
		}

		entry, ok := idx[ftID]
		if !ok {
			entry = catalog.FrameTypeEntry{ID: ftID, Name: ftName, Price: ftPrice, Sizes: []catalog.SizeRef{}}
		}
		if sizeID.Valid {
			entry.Sizes = append(entry.Sizes, catalog.SizeRef{
				ID:    sizeID.String,
				Name:  sizeName.String,
				Price: sizePrice.Decimal,
			})
		}
		idx[ftID] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating frame catalog rows: %w", err)
	}
	return idx, nil
}
