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

// ClassroomPatch is the partial-update set for a classroom
type ClassroomPatch struct {
	Name        *string
	Description *string
	BranchID    *int64
}

// ClassroomRepository handles classroom database operations
type ClassroomRepository struct {
	q db.Querier
}

// NewClassroomRepository creates a new ClassroomRepository
func NewClassroomRepository(q db.Querier) *ClassroomRepository {
	return &ClassroomRepository{q: q}
}

// Create inserts a classroom inside a branch
func (r *ClassroomRepository) Create(ctx context.Context, c *models.Classroom) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO classrooms (name, description, branch_id, administrator_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, updated_at`,
		c.Name, c.Description, c.BranchID, c.AdministratorID,
	).Scan(&c.ID, &c.UpdatedAt)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConstraintViolation(err)
		}
		return fmt.Errorf("error creating classroom: %w", err)
	}

	return nil
}

// GetByID retrieves a classroom by ID, nil when absent
func (r *ClassroomRepository) GetByID(ctx context.Context, id int64) (*models.Classroom, error) {
	c := &models.Classroom{}
	err := r.q.QueryRow(ctx, `
		SELECT id, name, description, branch_id, administrator_id, updated_at
		FROM classrooms WHERE id = $1`, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.BranchID, &c.AdministratorID, &c.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving classroom: %w", err)
	}

	return c, nil
}

// GetAll retrieves all classrooms
func (r *ClassroomRepository) GetAll(ctx context.Context) ([]*models.Classroom, error) {
	return r.queryClassrooms(ctx, `
		SELECT id, name, description, branch_id, administrator_id, updated_at
		FROM classrooms ORDER BY id`)
}

// GetByBranch retrieves the classrooms of a branch
func (r *ClassroomRepository) GetByBranch(ctx context.Context, branchID int64) ([]*models.Classroom, error) {
	return r.queryClassrooms(ctx, `
		SELECT id, name, description, branch_id, administrator_id, updated_at
		FROM classrooms WHERE branch_id = $1`, branchID)
}

// GetByAdministrator retrieves the classrooms owned by an administrator
func (r *ClassroomRepository) GetByAdministrator(ctx context.Context, administratorID int64) ([]*models.Classroom, error) {
	return r.queryClassrooms(ctx, `
		SELECT id, name, description, branch_id, administrator_id, updated_at
		FROM classrooms WHERE administrator_id = $1`, administratorID)
}

func (r *ClassroomRepository) queryClassrooms(ctx context.Context, sql string, args ...any) ([]*models.Classroom, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Classroom
	for rows.Next() {
		c := &models.Classroom{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.BranchID, &c.AdministratorID, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, rows.Err()
}

// Update applies a partial update and returns the updated classroom, nil when
// the id does not exist.
func (r *ClassroomRepository) Update(ctx context.Context, id int64, patch ClassroomPatch) (*models.Classroom, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil || c == nil {
		return c, err
	}

	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = patch.Description
	}
	if patch.BranchID != nil {
		c.BranchID = *patch.BranchID
	}

	err = r.q.QueryRow(ctx, `
		UPDATE classrooms
		SET name = $1, description = $2, branch_id = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at`,
		c.Name, c.Description, c.BranchID, c.ID).Scan(&c.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.NewConstraintViolation(err)
		}
		return nil, fmt.Errorf("error updating classroom: %w", err)
	}

	return c, nil
}

// Delete removes a classroom. Returns false when the id does not exist.
func (r *ClassroomRepository) Delete(ctx context.Context, id int64) (bool, error) {
	cmdTag, err := r.q.Exec(ctx, `DELETE FROM classrooms WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting classroom: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}
