package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/vmerk/tutorium/internal/app/models"
	"github.com/vmerk/tutorium/internal/db"
)

// ParentRepository handles parent role-record database operations
type ParentRepository struct {
	q  db.Querier
	sb squirrel.StatementBuilderType
}

// NewParentRepository creates a new ParentRepository
func NewParentRepository(q db.Querier) *ParentRepository {
	return &ParentRepository{
		q:  q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateParent creates a parent role record sharing the user's primary key
func (r *ParentRepository) CreateParent(ctx context.Context, parent *models.Parent) error {
	sql, args, err := r.sb.Insert("parents").
		Columns("user_id", "work_name", "work_phone").
		Values(parent.UserID, parent.WorkName, parent.WorkPhone).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create parent query: %w", err)
	}

	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating parent: %w", err)
	}

	return nil
}

// GetParentByUserID retrieves a parent record by the owning user's ID.
// Returns nil without error when the user holds no parent role.
func (r *ParentRepository) GetParentByUserID(ctx context.Context, userID int64) (*models.Parent, error) {
	sql, args, err := r.sb.Select("user_id", "work_name", "work_phone").
		From("parents").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get parent query: %w", err)
	}

	parent := &models.Parent{}
	err = r.q.QueryRow(ctx, sql, args...).Scan(&parent.UserID, &parent.WorkName, &parent.WorkPhone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving parent: %w", err)
	}

	return parent, nil
}
