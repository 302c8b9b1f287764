package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vmerk/tutorium/internal/app/models"
	"github.com/vmerk/tutorium/internal/db"
	"github.com/vmerk/tutorium/internal/pkg/apperrors"
	"github.com/vmerk/tutorium/internal/pkg/dberrors"
)

// BranchPatch is the partial-update set for a branch
type BranchPatch struct {
	Address      *string
	WorkingStart *string
	WorkingEnd   *string
	Description  *string
	PhotoURL     *string
}

// BranchRepository handles branch database operations
type BranchRepository struct {
	q db.Querier
}

// NewBranchRepository creates a new BranchRepository
func NewBranchRepository(q db.Querier) *BranchRepository {
	return &BranchRepository{q: q}
}

// Create inserts a branch owned by an administrator
func (r *BranchRepository) Create(ctx context.Context, b *models.Branch) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO branches (address, working_start, working_end, description, photo_url, administrator_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, updated_at`,
		b.Address, b.WorkingStart, b.WorkingEnd, b.Description, b.PhotoURL, b.AdministratorID,
	).Scan(&b.ID, &b.UpdatedAt)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConstraintViolation(err)
		}
		return fmt.Errorf("error creating branch: %w", err)
	}

	return nil
}

// GetByID retrieves a branch by ID, nil when absent
func (r *BranchRepository) GetByID(ctx context.Context, id int64) (*models.Branch, error) {
	b := &models.Branch{}
	err := r.q.QueryRow(ctx, `
		SELECT id, address, working_start::text, working_end::text, description, photo_url, administrator_id, updated_at
		FROM branches WHERE id = $1`, id).Scan(
		&b.ID, &b.Address, &b.WorkingStart, &b.WorkingEnd, &b.Description,
		&b.PhotoURL, &b.AdministratorID, &b.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving branch: %w", err)
	}

	return b, nil
}

// GetAll retrieves all branches
func (r *BranchRepository) GetAll(ctx context.Context) ([]*models.Branch, error) {
	return r.queryBranches(ctx, `
		SELECT id, address, working_start::text, working_end::text, description, photo_url, administrator_id, updated_at
		FROM branches ORDER BY id`)
}

// GetByAdministrator retrieves the branches owned by an administrator
func (r *BranchRepository) GetByAdministrator(ctx context.Context, administratorID int64) ([]*models.Branch, error) {
	return r.queryBranches(ctx, `
		SELECT id, address, working_start::text, working_end::text, description, photo_url, administrator_id, updated_at
		FROM branches WHERE administrator_id = $1`, administratorID)
}

func (r *BranchRepository) queryBranches(ctx context.Context, sql string, args ...any) ([]*models.Branch, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Branch
	for rows.Next() {
		b := &models.Branch{}
		if err := rows.Scan(
			&b.ID, &b.Address, &b.WorkingStart, &b.WorkingEnd, &b.Description,
			&b.PhotoURL, &b.AdministratorID, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}

	return out, rows.Err()
}

// Update applies a partial update and returns the updated branch, nil when
// the id does not exist.
func (r *BranchRepository) Update(ctx context.Context, id int64, patch BranchPatch) (*models.Branch, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil || b == nil {
		return b, err
	}

	if patch.Address != nil {
		b.Address = patch.Address
	}
	if patch.WorkingStart != nil {
		b.WorkingStart = *patch.WorkingStart
	}
	if patch.WorkingEnd != nil {
		b.WorkingEnd = *patch.WorkingEnd
	}
	if patch.Description != nil {
		b.Description = patch.Description
	}
	if patch.PhotoURL != nil {
		b.PhotoURL = patch.PhotoURL
	}

	err = r.q.QueryRow(ctx, `
		UPDATE branches
		SET address = $1, working_start = $2, working_end = $3, description = $4, photo_url = $5, updated_at = now()
		WHERE id = $6
		RETURNING updated_at`,
		b.Address, b.WorkingStart, b.WorkingEnd, b.Description, b.PhotoURL, b.ID).Scan(&b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error updating branch: %w", err)
	}

	return b, nil
}

// Delete removes a branch; its classrooms cascade. Returns false when the id
// does not exist.
func (r *BranchRepository) Delete(ctx context.Context, id int64) (bool, error) {
	cmdTag, err := r.q.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting branch: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}
