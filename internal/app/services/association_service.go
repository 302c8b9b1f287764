package services

import (
	"context"
	"fmt"

	"github.com/vmerk/tutorium/internal/app/models"
	"github.com/vmerk/tutorium/internal/app/repositories"
	"github.com/vmerk/tutorium/internal/pkg/apperrors"
	"github.com/vmerk/tutorium/internal/pkg/logger"
)

// AssociationService handles student-teacher links
type AssociationService struct {
	associationRepo *repositories.AssociationRepository
	userRepo        *repositories.UserRepository
}

// NewAssociationService creates a new AssociationService
func NewAssociationService(
	associationRepo *repositories.AssociationRepository,
	userRepo *repositories.UserRepository,
) *AssociationService {
	return &AssociationService{
		associationRepo: associationRepo,
		userRepo:        userRepo,
	}
}

// checkPairRoles verifies both sides of a link hold the right role
func (s *AssociationService) checkPairRoles(ctx context.Context, studentID, teacherID int64) error {
	student, err := s.userRepo.GetStudentByUserID(ctx, studentID)
	if err != nil {
		return fmt.Errorf("error checking student: %w", err)
	}
	if student == nil {
		return fmt.Errorf("%w: user %d has no student role", apperrors.ErrUserNotFound, studentID)
	}

	teacher, err := s.userRepo.GetTeacherByUserID(ctx, teacherID)
	if err != nil {
		return fmt.Errorf("error checking teacher: %w", err)
	}
	if teacher == nil {
		return fmt.Errorf("%w: user %d has no teacher role", apperrors.ErrUserNotFound, teacherID)
	}

	return nil
}

// Create links one student to one teacher
func (s *AssociationService) Create(ctx context.Context, studentID, teacherID int64) (*models.StudentTeacherAssociation, error) {
	if err := s.checkPairRoles(ctx, studentID, teacherID); err != nil {
		return nil, err
	}

	assoc, err := s.associationRepo.Create(ctx, studentID, teacherID)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("studentID", studentID).Int64("teacherID", teacherID).Msg("Association created")
	return assoc, nil
}

// BulkCreate links every listed student to every listed teacher, skipping
// pairs that already exist.
func (s *AssociationService) BulkCreate(ctx context.Context, studentIDs, teacherIDs []int64) ([]models.AssociationPair, int, error) {
	if len(studentIDs) == 0 || len(teacherIDs) == 0 {
		return nil, 0, fmt.Errorf("%w: student and teacher lists must be non-empty", apperrors.ErrValidationFailed)
	}

	for _, studentID := range studentIDs {
		student, err := s.userRepo.GetStudentByUserID(ctx, studentID)
		if err != nil {
			return nil, 0, fmt.Errorf("error checking student: %w", err)
		}
		if student == nil {
			return nil, 0, fmt.Errorf("%w: user %d has no student role", apperrors.ErrUserNotFound, studentID)
		}
	}
	for _, teacherID := range teacherIDs {
		teacher, err := s.userRepo.GetTeacherByUserID(ctx, teacherID)
		if err != nil {
			return nil, 0, fmt.Errorf("error checking teacher: %w", err)
		}
		if teacher == nil {
			return nil, 0, fmt.Errorf("%w: user %d has no teacher role", apperrors.ErrUserNotFound, teacherID)
		}
	}

	created, err := s.associationRepo.BulkCreate(ctx, studentIDs, teacherIDs)
	if err != nil {
		return nil, 0, err
	}

	skipped := len(studentIDs)*len(teacherIDs) - len(created)
	logger.Info().Int("created", len(created)).Int("skipped", skipped).Msg("Bulk associations created")

	return created, skipped, nil
}

// Delete removes a student-teacher link. Missing links surface
// ErrResourceNotFound.
func (s *AssociationService) Delete(ctx context.Context, studentID, teacherID int64) error {
	deleted, err := s.associationRepo.Delete(ctx, studentID, teacherID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// GetAll retrieves every student-teacher link
func (s *AssociationService) GetAll(ctx context.Context) ([]*models.StudentTeacherAssociation, error) {
	return s.associationRepo.GetAll(ctx)
}

// TeachersForStudent lists the teachers linked to a student
func (s *AssociationService) TeachersForStudent(ctx context.Context, studentID int64) ([]*models.Teacher, error) {
	student, err := s.userRepo.GetStudentByUserID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error checking student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrUserNotFound
	}

	return s.associationRepo.TeachersForStudent(ctx, studentID)
}

// StudentsForTeacher lists the students linked to a teacher
func (s *AssociationService) StudentsForTeacher(ctx context.Context, teacherID int64) ([]*models.Student, error) {
	teacher, err := s.userRepo.GetTeacherByUserID(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("error checking teacher: %w", err)
	}
	if teacher == nil {
		return nil, apperrors.ErrUserNotFound
	}

	return s.associationRepo.StudentsForTeacher(ctx, teacherID)
}
