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

// SubFrameTypeRepository handles database operations for sub-frame types
type SubFrameTypeRepository struct{}

// NewSubFrameTypeRepository creates a new SubFrameTypeRepository
func NewSubFrameTypeRepository() *SubFrameTypeRepository {
	return &SubFrameTypeRepository{}
}

// Ensure SubFrameTypeRepository implements SubFrameTypeRepositoryInterface
var _ SubFrameTypeRepositoryInterface = (*SubFrameTypeRepository)(nil)

const subFrameTypeColumns = `id, name, price, frame_type_id, images, created_at, updated_at`

func scanSubFrameType(row rowScanner) (*models.SubFrameType, error) {
	var sft models.SubFrameType
	err := row.Scan(
		&sft.ID,
		&sft.Name,
		&sft.Price,
		&sft.FrameTypeID,
		db.StringArray(&sft.Images),
		&sft.CreatedAt,
		&sft.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sft, nil
}

// lockFrameType locks the owning frame type row for the rest of the transaction
func lockFrameType(ctx context.Context, tx *sql.Tx, frameTypeID string) error {
	var id string
	err := tx.QueryRowContext(ctx, `SELECT id FROM frame_types WHERE id = $1 FOR UPDATE`, frameTypeID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("frame type %s: %w", frameTypeID, ErrNotFound)
		}
		return fmt.Errorf("failed to fetch frame type: %w", err)
	}
	return nil
}

// Create inserts a sub-frame type and appends it to its frame type's back-reference list
// in the same transaction. The owning frame type must exist.
func (r *SubFrameTypeRepository) Create(ctx context.Context, req *models.CreateSubFrameTypeRequest) (*models.SubFrameType, error) {
	name := strings.TrimSpace(req.Name)
	log.Printf("🖼️  Create: Creating sub-frame type name=%s, frame_type_id=%s", name, req.FrameTypeID)

	if req.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ Create: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := lockFrameType(ctx, tx, req.FrameTypeID); err != nil {
		log.Printf("❌ Create: %v", err)
		return nil, err
	}

	query := `
		INSERT INTO sub_frame_types (name, price, frame_type_id, images)
		VALUES ($1, $2, $3, $4::text[])
		RETURNING ` + subFrameTypeColumns

	sft, err := scanSubFrameType(tx.QueryRowContext(ctx, query, name, req.Price, req.FrameTypeID, emptyIfNil(req.Images)))
	if err != nil {
		if db.IsUniqueViolation(err) {
			log.Printf("❌ Create: Sub-frame type name already exists: %s", name)
			return nil, fmt.Errorf("sub-frame type %q: %w", name, ErrDuplicate)
		}
		log.Printf("❌ Create: Error inserting sub-frame type: %v", err)
		return nil, fmt.Errorf("failed to create sub-frame type: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE frame_types
		SET sub_frame_type_ids = array_append(sub_frame_type_ids, $1::uuid), updated_at = NOW()
		WHERE id = $2
	`, sft.ID, req.FrameTypeID)
	if err != nil {
		log.Printf("❌ Create: Error updating frame type back-reference: %v", err)
		return nil, fmt.Errorf("failed to link sub-frame type to frame type: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Create: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Create: Successfully created sub-frame type id=%s", sft.ID)
	return sft, nil
}

// GetByID retrieves a sub-frame type by id
func (r *SubFrameTypeRepository) GetByID(ctx context.Context, id string) (*models.SubFrameType, error) {
	query := `SELECT ` + subFrameTypeColumns + ` FROM sub_frame_types WHERE id = $1`

	sft, err := scanSubFrameType(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sub-frame type %s: %w", id, ErrNotFound)
		}
		log.Printf("❌ GetByID: Error fetching sub-frame type: %v", err)
		return nil, fmt.Errorf("failed to get sub-frame type: %w", err)
	}
	return sft, nil
}

// List retrieves sub-frame types, optionally only those of one frame type
func (r *SubFrameTypeRepository) List(ctx context.Context, frameTypeID *string) ([]models.SubFrameType, error) {
	query := `SELECT ` + subFrameTypeColumns + ` FROM sub_frame_types`
	args := []any{}
	if frameTypeID != nil {
		query += ` WHERE frame_type_id = $1`
		args = append(args, *frameTypeID)
	}
	query += ` ORDER BY name`

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ List: Error querying sub-frame types: %v", err)
		return nil, fmt.Errorf("failed to query sub-frame types: %w", err)
	}
	defer rows.Close()

	subFrameTypes := []models.SubFrameType{}
	for rows.Next() {
		sft, err := scanSubFrameType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sub-frame type: %w", err)
		}
		subFrameTypes = append(subFrameTypes, *sft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sub-frame types: %w", err)
	}
	return subFrameTypes, nil
}

// Update changes the name or price of a sub-frame type
func (r *SubFrameTypeRepository) Update(ctx context.Context, id string, req *models.UpdateSubFrameTypeRequest) (*models.SubFrameType, error) {
	log.Printf("🖼️  Update: Updating sub-frame type id=%s", id)

	if req.Price != nil && req.Price.IsNegative() {
		return nil, ErrNegativePrice
	}
	var name *string
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		name = &trimmed
	}

	query := `
		UPDATE sub_frame_types
		SET name = COALESCE($2, name),
		    price = COALESCE($3, price),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + subFrameTypeColumns

	sft, err := scanSubFrameType(db.DB.QueryRowContext(ctx, query, id, name, req.Price))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sub-frame type %s: %w", id, ErrNotFound)
		}
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("sub-frame type name: %w", ErrDuplicate)
		}
		log.Printf("❌ Update: Error updating sub-frame type: %v", err)
		return nil, fmt.Errorf("failed to update sub-frame type: %w", err)
	}
	return sft, nil
}

// Delete removes a sub-frame type and pulls it from its frame type's back-reference list
// in the same transaction
func (r *SubFrameTypeRepository) Delete(ctx context.Context, id string) error {
	log.Printf("🗑️  Delete: Deleting sub-frame type id=%s", id)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ Delete: Error starting transaction: %v", err)
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var frameTypeID string
	err = tx.QueryRowContext(ctx, `DELETE FROM sub_frame_types WHERE id = $1 RETURNING frame_type_id`, id).Scan(&frameTypeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("sub-frame type %s: %w", id, ErrNotFound)
		}
		log.Printf("❌ Delete: Error deleting sub-frame type: %v", err)
		return fmt.Errorf("failed to delete sub-frame type: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE frame_types
		SET sub_frame_type_ids = array_remove(sub_frame_type_ids, $1::uuid), updated_at = NOW()
		WHERE id = $2
	`, id, frameTypeID)
	if err != nil {
		log.Printf("❌ Delete: Error updating frame type back-reference: %v", err)
		return fmt.Errorf("failed to unlink sub-frame type from frame type: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Delete: Error committing transaction: %v", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Delete: Successfully deleted sub-frame type id=%s", id)
	return nil
}

// AddImage appends an image URL to a sub-frame type
func (r *SubFrameTypeRepository) AddImage(ctx context.Context, id string, imageURL string) (*models.SubFrameType, error) {
	query := `
		UPDATE sub_frame_types
		SET images = array_append(images, $2::text), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + subFrameTypeColumns

	sft, err := scanSubFrameType(db.DB.QueryRowContext(ctx, query, id, imageURL))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sub-frame type %s: %w", id, ErrNotFound)
		}
		log.Printf("❌ AddImage: Error appending image: %v", err)
		return nil, fmt.Errorf("failed to add sub-frame type image: %w", err)
	}

	log.Printf("✅ AddImage: Sub-frame type id=%s now has %d images", id, len(sft.Images))
	return sft, nil
}

// IDsByName maps sub-frame type names to ids, case-insensitively
func (r *SubFrameTypeRepository) IDsByName(ctx context.Context, names []string) (map[string]string, error) {
	return idsByName(ctx, "sub_frame_types", names)
}
