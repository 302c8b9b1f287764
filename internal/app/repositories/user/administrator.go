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

// AdministratorRepository handles administrator role-record database operations
type AdministratorRepository struct {
	q  db.Querier
	sb squirrel.StatementBuilderType
}

// NewAdministratorRepository creates a new AdministratorRepository
func NewAdministratorRepository(q db.Querier) *AdministratorRepository {
	return &AdministratorRepository{
		q:  q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateAdministrator creates an administrator role record sharing the user's
// primary key
func (r *AdministratorRepository) CreateAdministrator(ctx context.Context, admin *models.Administrator) error {
	sql, args, err := r.sb.Insert("administrators").
		Columns("user_id", "access_level").
		Values(admin.UserID, admin.AccessLevel).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create administrator query: %w", err)
	}

	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating administrator: %w", err)
	}

	return nil
}

// GetAdministratorByUserID retrieves an administrator record by the owning
// user's ID. Returns nil without error when the user holds no administrator role.
func (r *AdministratorRepository) GetAdministratorByUserID(ctx context.Context, userID int64) (*models.Administrator, error) {
	sql, args, err := r.sb.Select("user_id", "access_level").
		From("administrators").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get administrator query: %w", err)
	}

	admin := &models.Administrator{}
	err = r.q.QueryRow(ctx, sql, args...).Scan(&admin.UserID, &admin.AccessLevel)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving administrator: %w", err)
	}

	return admin, nil
}
