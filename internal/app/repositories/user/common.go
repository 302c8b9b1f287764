package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vmerk/tutorium/internal/app/models"
	"github.com/vmerk/tutorium/internal/db"
)

// Repository handles common user database operations. It is bound to a
// db.Querier, so the same code runs on the pool or inside a transaction.
type Repository struct {
	q db.Querier
}

// NewRepository creates a new Repository bound to the given querier
func NewRepository(q db.Querier) *Repository {
	return &Repository{q: q}
}

const userColumns = `id, full_name, email, password_hash, birthday, gender, city, phone_number, profile_picture_url, unique_code, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.FullName, &user.Email, &user.PasswordHash,
		&user.Birthday, &user.Gender, &user.City, &user.PhoneNumber,
		&user.ProfilePictureURL, &user.UniqueCode, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a user row and fills in the generated id and timestamps.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO users (full_name, email, password_hash, birthday, gender, city, phone_number, profile_picture_url, unique_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		user.FullName, user.Email, user.PasswordHash, user.Birthday, user.Gender,
		user.City, user.PhoneNumber, user.ProfilePictureURL, user.UniqueCode,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return err
	}

	return nil
}

// GetUserByID retrieves a user by ID. Returns nil without error when absent.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := scanUser(r.q.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email. Returns nil without error when absent.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(r.q.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1`, email))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}

	return user, nil
}

// GetAllUsers retrieves all users
func (r *Repository) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(
			&user.ID, &user.FullName, &user.Email, &user.PasswordHash,
			&user.Birthday, &user.Gender, &user.City, &user.PhoneNumber,
			&user.ProfilePictureURL, &user.UniqueCode, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// EmailExists checks if an email is already registered
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// UniqueCodeExists checks if a unique code is already taken
func (r *Repository) UniqueCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE unique_code = $1)`, code).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking unique code: %w", err)
	}

	return exists, nil
}

// DeleteUser removes a user row. Role records and association rows cascade;
// the delete is blocked by the storage engine while subscriptions or lessons
// still reference the user.
func (r *Repository) DeleteUser(ctx context.Context, id int64) (bool, error) {
	cmdTag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	return cmdTag.RowsAffected() > 0, nil
}
