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

// StudentRepository handles student role-record database operations
type StudentRepository struct {
	q  db.Querier
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(q db.Querier) *StudentRepository {
	return &StudentRepository{
		q:  q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateStudent creates a student role record sharing the user's primary key
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("user_id", "class_number", "school_name").
		Values(student.UserID, student.ClassNumber, student.SchoolName).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetStudentByUserID retrieves a student record by the owning user's ID.
// Returns nil without error when the user holds no student role.
func (r *StudentRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	sql, args, err := r.sb.Select("user_id", "class_number", "school_name").
		From("students").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student := &models.Student{}
	err = r.q.QueryRow(ctx, sql, args...).Scan(&student.UserID, &student.ClassNumber, &student.SchoolName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// UpdateStudent updates a student's attributes
func (r *StudentRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		Set("class_number", student.ClassNumber).
		Set("school_name", student.SchoolName).
		Where(squirrel.Eq{"user_id": student.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}

	return nil
}
