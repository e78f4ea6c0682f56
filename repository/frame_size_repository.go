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

// FrameSizeRepository handles database operations for frame sizes
type FrameSizeRepository struct{}

// NewFrameSizeRepository creates a new FrameSizeRepository
func NewFrameSizeRepository() *FrameSizeRepository {
	return &FrameSizeRepository{}
}

// Ensure FrameSizeRepository implements FrameSizeRepositoryInterface
var _ FrameSizeRepositoryInterface = (*FrameSizeRepository)(nil)

const frameSizeColumns = `id, name, price, frame_type_id, created_at, updated_at`

func scanFrameSize(row rowScanner) (*models.FrameSize, error) {
	var fs models.FrameSize
	if err := row.Scan(&fs.ID, &fs.Name, &fs.Price, &fs.FrameTypeID, &fs.CreatedAt, &fs.UpdatedAt); err != nil {
		return nil, err
	}
	return &fs, nil
}

// Create inserts a frame size and pushes it onto the owning frame type's size list
// in the same transaction. (name, frame type) must be unique.
func (r *FrameSizeRepository) Create(ctx context.Context, req *models.CreateFrameSizeRequest) (*models.FrameSize, error) {
	name := strings.TrimSpace(req.Name)
	log.Printf("📐 Create: Creating frame size name=%s, frame_type_id=%s", name, req.FrameTypeID)

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
		INSERT INTO frame_sizes (name, price, frame_type_id)
		VALUES ($1, $2, $3)
		RETURNING ` + frameSizeColumns

	fs, err := scanFrameSize(tx.QueryRowContext(ctx, query, name, req.Price, req.FrameTypeID))
	if err != nil {
		if db.IsUniqueViolation(err) {
			log.Printf("❌ Create: Frame size %s already exists for frame type %s", name, req.FrameTypeID)
			return nil, fmt.Errorf("frame size %q for frame type %s: %w", name, req.FrameTypeID, ErrDuplicate)
		}
		log.Printf("❌ Create: Error inserting frame size: %v", err)
		return nil, fmt.Errorf("failed to create frame size: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE frame_types
		SET frame_size_ids = array_append(frame_size_ids, $1::uuid), updated_at = NOW()
		WHERE id = $2
	`, fs.ID, req.FrameTypeID)
	if err != nil {
		log.Printf("❌ Create: Error updating frame type back-reference: %v", err)
		return nil, fmt.Errorf("failed to link frame size to frame type: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Create: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Create: Successfully created frame size id=%s", fs.ID)
	return fs, nil
}

// GetByID retrieves a frame size by id
func (r *FrameSizeRepository) GetByID(ctx context.Context, id string) (*models.FrameSize, error) {
	query := `SELECT ` + frameSizeColumns + ` FROM frame_sizes WHERE id = $1`

	fs, err := scanFrameSize(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("frame size %s: %w", id, ErrNotFound)
		}
		log.Printf("❌ GetByID: Error fetching frame size: %v", err)
		return nil, fmt.Errorf("failed to get frame size: %w", err)
	}
	return fs, nil
}

// ListByFrameType retrieves the sizes of one frame type
func (r *FrameSizeRepository) ListByFrameType(ctx context.Context, frameTypeID string) ([]models.FrameSize, error) {
	query := `SELECT ` + frameSizeColumns + ` FROM frame_sizes WHERE frame_type_id = $1 ORDER BY name`
	return r.list(ctx, query, frameTypeID)
}

// ListByIDs retrieves the sizes with the given ids. Unknown ids are skipped.
func (r *FrameSizeRepository) ListByIDs(ctx context.Context, ids []string) ([]models.FrameSize, error) {
	if len(ids) == 0 {
		return []models.FrameSize{}, nil
	}
	query := `SELECT ` + frameSizeColumns + ` FROM frame_sizes WHERE id = ANY($1::uuid[]) ORDER BY name, id`
	return r.list(ctx, query, ids)
}

func (r *FrameSizeRepository) list(ctx context.Context, query string, args ...any) ([]models.FrameSize, error) {
	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ List: Error querying frame sizes: %v", err)
		return nil, fmt.Errorf("failed to query frame sizes: %w", err)
	}
	defer rows.Close()

	sizes := []models.FrameSize{}
	for rows.Next() {
		fs, err := scanFrameSize(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan frame size: %w", err)
		}
		sizes = append(sizes, *fs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating frame sizes: %w", err)
	}
	return sizes, nil
}

// Update changes the name or price of a frame size
func (r *FrameSizeRepository) Update(ctx context.Context, id string, req *models.UpdateFrameSizeRequest) (*models.FrameSize, error) {
	log.Printf("📐 Update: Updating frame size id=%s", id)

	if req.Price != nil && req.Price.IsNegative() {
		return nil, ErrNegativePrice
	}
	var name *string
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		name = &trimmed
	}

	query := `
		UPDATE frame_sizes
		SET name = COALESCE($2, name),
		    price = COALESCE($3, price),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + frameSizeColumns

	fs, err := scanFrameSize(db.DB.QueryRowContext(ctx, query, id, name, req.Price))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("frame size %s: %w", id, ErrNotFound)
		}
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("frame size name: %w", ErrDuplicate)
		}
		log.Printf("❌ Update: Error updating frame size: %v", err)
		return nil, fmt.Errorf("failed to update frame size: %w", err)
	}
	return fs, nil
}

// Delete removes a frame size and pulls it from the owning frame type's size list
// in the same transaction
func (r *FrameSizeRepository) Delete(ctx context.Context, id string) error {
	log.Printf("🗑️  Delete: Deleting frame size id=%s", id)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ Delete: Error starting transaction: %v", err)
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var frameTypeID string
	err = tx.QueryRowContext(ctx, `DELETE FROM frame_sizes WHERE id = $1 RETURNING frame_type_id`, id).Scan(&frameTypeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("frame size %s: %w", id, ErrNotFound)
		}
		log.Printf("❌ Delete: Error deleting frame size: %v", err)
		return fmt.Errorf("failed to delete frame size: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE frame_types
		SET frame_size_ids = array_remove(frame_size_ids, $1::uuid), updated_at = NOW()
		WHERE id = $2
	`, id, frameTypeID)
	if err != nil {
		log.Printf("❌ Delete: Error updating frame type back-reference: %v", err)
		return fmt.Errorf("failed to unlink frame size from frame type: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Delete: Error committing transaction: %v", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Delete: Successfully deleted frame size id=%s", id)
	return nil
}
