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

// AssociationRepository manages student-teacher association rows. The
// composite-key unique constraint is the authoritative duplicate guard; the
// pre-insert existence checks are advisory.
type AssociationRepository struct {
	store *db.PostgresDB
}

// NewAssociationRepository creates a new AssociationRepository
func NewAssociationRepository(store *db.PostgresDB) *AssociationRepository {
	return &AssociationRepository{store: store}
}

// Get retrieves an association by its pair, nil when absent
func (r *AssociationRepository) Get(ctx context.Context, studentID, teacherID int64) (*models.StudentTeacherAssociation, error) {
	return getAssociation(ctx, r.store.Pool, studentID, teacherID)
}

func getAssociation(ctx context.Context, q db.Querier, studentID, teacherID int64) (*models.StudentTeacherAssociation, error) {
	a := &models.StudentTeacherAssociation{}
	err := q.QueryRow(ctx, `
		SELECT student_id, teacher_id
		FROM student_teacher_associations
		WHERE student_id = $1 AND teacher_id = $2`,
		studentID, teacherID).Scan(&a.StudentID, &a.TeacherID)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving association: %w", err)
	}

	return a, nil
}

// GetAll retrieves every association row
func (r *AssociationRepository) GetAll(ctx context.Context) ([]*models.StudentTeacherAssociation, error) {
	rows, err := r.store.Pool.Query(ctx, `
		SELECT student_id, teacher_id FROM student_teacher_associations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.StudentTeacherAssociation
	for rows.Next() {
		a := &models.StudentTeacherAssociation{}
		if err := rows.Scan(&a.StudentID, &a.TeacherID); err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

// Create inserts an association row. Fails with ErrAssociationExists when the
// pair is already linked, whether caught by the pre-check or by the composite
// primary key under a concurrent insert.
func (r *AssociationRepository) Create(ctx context.Context, studentID, teacherID int64) (*models.StudentTeacherAssociation, error) {
	existing, err := r.Get(ctx, studentID, teacherID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrAssociationExists
	}

	_, err = r.store.Pool.Exec(ctx, `
		INSERT INTO student_teacher_associations (student_id, teacher_id)
		VALUES ($1, $2)`,
		studentID, teacherID)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrAssociationExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.NewConstraintViolation(err)
		}
		return nil, fmt.Errorf("error creating association: %w", err)
	}

	return &models.StudentTeacherAssociation{StudentID: studentID, TeacherID: teacherID}, nil
}

// Delete removes an association. Returns false without error when the pair is
// not linked.
func (r *AssociationRepository) Delete(ctx context.Context, studentID, teacherID int64) (bool, error) {
	cmdTag, err := r.store.Pool.Exec(ctx, `
		DELETE FROM student_teacher_associations
		WHERE student_id = $1 AND teacher_id = $2`,
		studentID, teacherID)
	if err != nil {
		return false, fmt.Errorf("error deleting association: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// BulkCreate links every (student, teacher) cross-product pair that is not
// linked yet, in one transaction. Returns the pairs actually created; any
// storage failure rolls back the whole batch.
func (r *AssociationRepository) BulkCreate(ctx context.Context, studentIDs, teacherIDs []int64) ([]models.AssociationPair, error) {
	var created []models.AssociationPair

	err := r.store.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, studentID := range studentIDs {
			for _, teacherID := range teacherIDs {
				existing, err := getAssociation(ctx, tx, studentID, teacherID)
				if err != nil {
					return err
				}
				if existing != nil {
					continue
				}

				if _, err := tx.Exec(ctx, `
					INSERT INTO student_teacher_associations (student_id, teacher_id)
					VALUES ($1, $2)`,
					studentID, teacherID); err != nil {
					return err
				}
				created = append(created, models.AssociationPair{StudentID: studentID, TeacherID: teacherID})
			}
		}
		return nil
	})

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrAssociationExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.NewConstraintViolation(err)
		}
		return nil, err
	}

	return created, nil
}

// TeachersForStudent lists the teachers linked to a student, with the owning
// user loaded. Callers must not assume any ordering.
func (r *AssociationRepository) TeachersForStudent(ctx context.Context, studentID int64) ([]*models.Teacher, error) {
	rows, err := r.store.Pool.Query(ctx, `
		SELECT t.user_id, t.experience, t.main_work,
		       u.id, u.full_name, u.email, u.password_hash, u.birthday, u.gender,
		       u.city, u.phone_number, u.profile_picture_url, u.unique_code, u.created_at, u.updated_at
		FROM teachers t
		JOIN student_teacher_associations a ON t.user_id = a.teacher_id
		JOIN users u ON u.id = t.user_id
		WHERE a.student_id = $1`,
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		t := &models.Teacher{User: &models.User{}}
		u := t.User
		if err := rows.Scan(
			&t.UserID, &t.Experience, &t.MainWork,
			&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Birthday, &u.Gender,
			&u.City, &u.PhoneNumber, &u.ProfilePictureURL, &u.UniqueCode, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}

	return teachers, rows.Err()
}

// StudentsForTeacher lists the students linked to a teacher, with the owning
// user loaded. Callers must not assume any ordering.
func (r *AssociationRepository) StudentsForTeacher(ctx context.Context, teacherID int64) ([]*models.Student, error) {
	rows, err := r.store.Pool.Query(ctx, `
		SELECT s.user_id, s.class_number, s.school_name,
		       u.id, u.full_name, u.email, u.password_hash, u.birthday, u.gender,
		       u.city, u.phone_number, u.profile_picture_url, u.unique_code, u.created_at, u.updated_at
		FROM students s
		JOIN student_teacher_associations a ON s.user_id = a.student_id
		JOIN users u ON u.id = s.user_id
		WHERE a.teacher_id = $1`,
		teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s := &models.Student{User: &models.User{}}
		u := s.User
		if err := rows.Scan(
			&s.UserID, &s.ClassNumber, &s.SchoolName,
			&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Birthday, &u.Gender,
			&u.City, &u.PhoneNumber, &u.ProfilePictureURL, &u.UniqueCode, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}

	return students, rows.Err()
}
