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

// FrameTypeRepository handles database operations for frame types
type FrameTypeRepository struct{}

// NewFrameTypeRepository creates a new FrameTypeRepository
func NewFrameTypeRepository() *FrameTypeRepository {
	return &FrameTypeRepository{}
}

// Ensure FrameTypeRepository implements FrameTypeRepositoryInterface
var _ FrameTypeRepositoryInterface = (*FrameTypeRepository)(nil)

const frameTypeColumns = `id, name, description, price, sub_frame_type_ids, frame_size_ids, created_at, updated_at`

func scanFrameType(row rowScanner) (*models.FrameType, error) {
	var ft models.FrameType
	err := row.Scan(
		&ft.ID,
		&ft.Name,
		&ft.Description,
		&ft.Price,
		db.StringArray(&ft.SubFrameTypeIDs),
		db.StringArray(&ft.FrameSizeIDs),
		&ft.CreatedAt,
		&ft.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ft, nil
}

// Create inserts a new frame type with empty back-reference lists
func (r *FrameTypeRepository) Create(ctx context.Context, req *models.CreateFrameTypeRequest) (*models.FrameType, error) {
	name := strings.TrimSpace(req.Name)
	log.Printf("🖼️  Create: Creating frame type name=%s", name)

	if req.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	query := `
		INSERT INTO frame_types (name, description, price)
		VALUES ($1, $2, $3)
		RETURNING ` + frameTypeColumns

	ft, err := scanFrameType(db.DB.QueryRowContext(ctx, query, name, req.Description, req.Price))
	if err != nil {
		if db.IsUniqueViolation(err) {
			log.Printf("❌ Create: Frame type name already exists: %s", name)
			return nil, fmt.Errorf("frame type %q: %w", name, ErrDuplicate)
		}
		log.Printf("❌ Create: Error creating frame type: %v", err)
		return nil, fmt.Errorf("failed to create frame type: %w", err)
	}

	log.Printf("✅ Create: Successfully created frame type id=%s", ft.ID)
	return ft, nil
}

// GetByID retrieves a frame type by id
func (r *FrameTypeRepository) GetByID(ctx context.Context, id string) (*models.FrameType, error) {
	query := `SELECT ` + frameTypeColumns + ` FROM frame_types WHERE id = $1`

	ft, err := scanFrameType(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("frame type %s: %w", id, ErrNotFound)
		}
		log.Printf("❌ GetByID: Error fetching frame type: %v", err)
		return nil, fmt.Errorf("failed to get frame type: %w", err)
	}
	return ft, nil
}

// List retrieves all frame types ordered by name
func (r *FrameTypeRepository) List(ctx context.Context) ([]models.FrameType, error) {
	query := `SELECT ` + frameTypeColumns + ` FROM frame_types ORDER BY name`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ List: Error querying frame types: %v", err)
		return nil, fmt.Errorf("failed to query frame types: %w", err)
	}
	defer rows.Close()

	frameTypes := []models.FrameType{}
	for rows.Next() {
		ft, err := scanFrameType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan frame type: %w", err)
		}
		frameTypes = append(frameTypes, *ft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating frame types: %w", err)
	}

	log.Printf("✓ List: Found %d frame types", len(frameTypes))
	return frameTypes, nil
}

// Update changes the name, description or price of a frame type. Nil fields are left unchanged.
func (r *FrameTypeRepository) Update(ctx context.Context, id string, req *models.UpdateFrameTypeRequest) (*models.FrameType, error) {
	log.Printf("🖼️  Update: Updating frame type id=%s", id)

	if req.Price != nil && req.Price.IsNegative() {
		return nil, ErrNegativePrice
	}
	var name *string
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		name = &trimmed
	}

	query := `
		UPDATE frame_types
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    price = COALESCE($4, price),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + frameTypeColumns

	ft, err := scanFrameType(db.DB.QueryRowContext(ctx, query, id, name, req.Description, req.Price))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("frame type %s: %w", id, ErrNotFound)
		}
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("frame type name: %w", ErrDuplicate)
		}
		log.Printf("❌ Update: Error updating frame type: %v", err)
		return nil, fmt.Errorf("failed to update frame type: %w", err)
	}

	log.Printf("✅ Update: Successfully updated frame type id=%s", ft.ID)
	return ft, nil
}

// Delete removes a frame type. Its sizes and sub-frame types are removed with it.
// Products that reference it keep the id.
func (r *FrameTypeRepository) Delete(ctx context.Context, id string) error {
	log.Printf("🗑️  Delete: Deleting frame type id=%s", id)

	result, err := db.DB.ExecContext(ctx, `DELETE FROM frame_types WHERE id = $1`, id)
	if err != nil {
		log.Printf("❌ Delete: Error deleting frame type: %v", err)
		return fmt.Errorf("failed to delete frame type: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("frame type %s: %w", id, ErrNotFound)
	}

	log.Printf("✅ Delete: Successfully deleted frame type id=%s", id)
	return nil
}

// IDsByName maps frame type names to ids, case-insensitively. Names with no match are absent.
func (r *FrameTypeRepository) IDsByName(ctx context.Context, names []string) (map[string]string, error) {
	return idsByName(ctx, "frame_types", names)
}

// idsByName looks up ids for names in a table whose names are unique ignoring case.
// Keys of the returned map are lower-cased names.
func idsByName(ctx context.Context, table string, names []string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	if len(names) == 0 {
		return out, nil
	}

	lowered := make([]string, 0, len(names))
	for _, n := range names {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(n)))
	}

	query := `SELECT id, LOWER(name) FROM ` + table + ` WHERE LOWER(name) = ANY($1::text[])`
	rows, err := db.DB.QueryContext(ctx, query, lowered)
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s by name: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		if _, seen := out[name]; seen {
			return nil, fmt.Errorf("%s name %q matches more than one row: %w", table, name, ErrDuplicate)
		}
		out[name] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", table, err)
	}
	return out, nil
}
