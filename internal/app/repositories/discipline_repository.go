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

// DisciplinePatch is the partial-update set for a discipline
type DisciplinePatch struct {
	Name        *string
	Description *string
}

// DisciplineRepository handles disciplines and the teacher-discipline
// association rows, matching the pairing rules of the student-teacher links.
type DisciplineRepository struct {
	q db.Querier
}

// NewDisciplineRepository creates a new DisciplineRepository
func NewDisciplineRepository(q db.Querier) *DisciplineRepository {
	return &DisciplineRepository{q: q}
}

// Create inserts a discipline owned by an administrator
func (r *DisciplineRepository) Create(ctx context.Context, d *models.Discipline) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO disciplines (name, description, administrator_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		d.Name, d.Description, d.AdministratorID).Scan(&d.ID, &d.CreatedAt)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConstraintViolation(err)
		}
		return fmt.Errorf("error creating discipline: %w", err)
	}

	return nil
}

// GetByID retrieves a discipline by ID, nil when absent
func (r *DisciplineRepository) GetByID(ctx context.Context, id int64) (*models.Discipline, error) {
	d := &models.Discipline{}
	err := r.q.QueryRow(ctx, `
		SELECT id, name, description, administrator_id, created_at
		FROM disciplines WHERE id = $1`, id).Scan(
		&d.ID, &d.Name, &d.Description, &d.AdministratorID, &d.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving discipline: %w", err)
	}

	return d, nil
}

// GetAll retrieves all disciplines
func (r *DisciplineRepository) GetAll(ctx context.Context) ([]*models.Discipline, error) {
	return r.queryDisciplines(ctx, `
		SELECT id, name, description, administrator_id, created_at
		FROM disciplines ORDER BY id`)
}

// GetByAdministrator retrieves the disciplines owned by an administrator
func (r *DisciplineRepository) GetByAdministrator(ctx context.Context, administratorID int64) ([]*models.Discipline, error) {
	return r.queryDisciplines(ctx, `
		SELECT id, name, description, administrator_id, created_at
		FROM disciplines WHERE administrator_id = $1`, administratorID)
}

// GetForTeacher retrieves the disciplines linked to a teacher via the
// association table. Callers must not assume any ordering.
func (r *DisciplineRepository) GetForTeacher(ctx context.Context, teacherID int64) ([]*models.Discipline, error) {
	return r.queryDisciplines(ctx, `
		SELECT d.id, d.name, d.description, d.administrator_id, d.created_at
		FROM disciplines d
		JOIN teacher_discipline_associations a ON d.id = a.discipline_id
		WHERE a.teacher_id = $1`, teacherID)
}

func (r *DisciplineRepository) queryDisciplines(ctx context.Context, sql string, args ...any) ([]*models.Discipline, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Discipline
	for rows.Next() {
		d := &models.Discipline{}
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.AdministratorID, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	return out, rows.Err()
}

// TeachersFor retrieves the teachers linked to a discipline, with the owning
// user loaded.
func (r *DisciplineRepository) TeachersFor(ctx context.Context, disciplineID int64) ([]*models.Teacher, error) {
	rows, err := r.q.Query(ctx, `
		SELECT t.user_id, t.experience, t.main_work,
		       u.id, u.full_name, u.email, u.password_hash, u.birthday, u.gender,
		       u.city, u.phone_number, u.profile_picture_url, u.unique_code, u.created_at, u.updated_at
		FROM teachers t
		JOIN teacher_discipline_associations a ON t.user_id = a.teacher_id
		JOIN users u ON u.id = t.user_id
		WHERE a.discipline_id = $1`,
		disciplineID)
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

// Update applies a partial update and returns the updated discipline, nil
// when the id does not exist.
func (r *DisciplineRepository) Update(ctx context.Context, id int64, patch DisciplinePatch) (*models.Discipline, error) {
	d, err := r.GetByID(ctx, id)
	if err != nil || d == nil {
		return d, err
	}

	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Description != nil {
		d.Description = *patch.Description
	}

	_, err = r.q.Exec(ctx, `
		UPDATE disciplines SET name = $1, description = $2 WHERE id = $3`,
		d.Name, d.Description, d.ID)
	if err != nil {
		return nil, fmt.Errorf("error updating discipline: %w", err)
	}

	return d, nil
}

// Delete removes a discipline; association rows cascade. Returns false when
// the id does not exist.
func (r *DisciplineRepository) Delete(ctx context.Context, id int64) (bool, error) {
	cmdTag, err := r.q.Exec(ctx, `DELETE FROM disciplines WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting discipline: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// HasTeacher checks whether a teacher is linked to a discipline
func (r *DisciplineRepository) HasTeacher(ctx context.Context, teacherID, disciplineID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM teacher_discipline_associations
		WHERE teacher_id = $1 AND discipline_id = $2)`,
		teacherID, disciplineID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking teacher-discipline association: %w", err)
	}

	return exists, nil
}

// AddTeacher links a teacher to a discipline. Fails with ErrAssociationExists
// for an already-linked pair; the composite primary key is the backstop under
// concurrent inserts.
func (r *DisciplineRepository) AddTeacher(ctx context.Context, teacherID, disciplineID int64) (*models.TeacherDisciplineAssociation, error) {
	linked, err := r.HasTeacher(ctx, teacherID, disciplineID)
	if err != nil {
		return nil, err
	}
	if linked {
		return nil, apperrors.ErrAssociationExists
	}

	_, err = r.q.Exec(ctx, `
		INSERT INTO teacher_discipline_associations (teacher_id, discipline_id)
		VALUES ($1, $2)`,
		teacherID, disciplineID)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrAssociationExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.NewConstraintViolation(err)
		}
		return nil, fmt.Errorf("error linking teacher to discipline: %w", err)
	}

	return &models.TeacherDisciplineAssociation{TeacherID: teacherID, DisciplineID: disciplineID}, nil
}

// RemoveTeacher unlinks a teacher from a discipline. Returns false without
// error when the pair is not linked.
func (r *DisciplineRepository) RemoveTeacher(ctx context.Context, teacherID, disciplineID int64) (bool, error) {
	cmdTag, err := r.q.Exec(ctx, `
		DELETE FROM teacher_discipline_associations
		WHERE teacher_id = $1 AND discipline_id = $2`,
		teacherID, disciplineID)
	if err != nil {
		return false, fmt.Errorf("error unlinking teacher from discipline: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}
