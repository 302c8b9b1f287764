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

// TeacherRepository handles teacher role-record database operations
type TeacherRepository struct {
	q  db.Querier
	sb squirrel.StatementBuilderType
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(q db.Querier) *TeacherRepository {
	return &TeacherRepository{
		q:  q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateTeacher creates a teacher role record sharing the user's primary key
func (r *TeacherRepository) CreateTeacher(ctx context.Context, teacher *models.Teacher) error {
	sql, args, err := r.sb.Insert("teachers").
		Columns("user_id", "experience", "main_work").
		Values(teacher.UserID, teacher.Experience, teacher.MainWork).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create teacher query: %w", err)
	}

	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating teacher: %w", err)
	}

	return nil
}

// GetTeacherByUserID retrieves a teacher record by the owning user's ID.
// Returns nil without error when the user holds no teacher role.
func (r *TeacherRepository) GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	sql, args, err := r.sb.Select("user_id", "experience", "main_work").
		From("teachers").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get teacher query: %w", err)
	}

	teacher := &models.Teacher{}
	err = r.q.QueryRow(ctx, sql, args...).Scan(&teacher.UserID, &teacher.Experience, &teacher.MainWork)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	return teacher, nil
}

// UpdateTeacher updates a teacher's attributes
func (r *TeacherRepository) UpdateTeacher(ctx context.Context, teacher *models.Teacher) error {
	sql, args, err := r.sb.Update("teachers").
		Set("experience", teacher.Experience).
		Set("main_work", teacher.MainWork).
		Where(squirrel.Eq{"user_id": teacher.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update teacher query: %w", err)
	}

	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error updating teacher: %w", err)
	}

	return nil
}
