package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vmerk/tutorium/internal/app/models"
	"github.com/vmerk/tutorium/internal/app/models/dto"
	"github.com/vmerk/tutorium/internal/app/repositories"
	"github.com/vmerk/tutorium/internal/pkg/apperrors"
)

// DisciplineService handles subject offerings and their teacher links
type DisciplineService struct {
	disciplineRepo *repositories.DisciplineRepository
	userRepo       *repositories.UserRepository
}

// NewDisciplineService creates a new DisciplineService
func NewDisciplineService(
	disciplineRepo *repositories.DisciplineRepository,
	userRepo *repositories.UserRepository,
) *DisciplineService {
	return &DisciplineService{
		disciplineRepo: disciplineRepo,
		userRepo:       userRepo,
	}
}

// Create adds a discipline owned by the calling administrator
func (s *DisciplineService) Create(ctx context.Context, administratorID int64, req *dto.CreateDisciplineRequest) (*models.Discipline, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	d := &models.Discipline{
		Name:            strings.TrimSpace(req.Name),
		Description:     description,
		AdministratorID: administratorID,
	}

	if err := s.disciplineRepo.Create(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

// GetByID retrieves a discipline. Missing ids surface ErrDisciplineNotFound.
func (s *DisciplineService) GetByID(ctx context.Context, id int64) (*models.Discipline, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: discipline ID must be positive", apperrors.ErrValidationFailed)
	}

	d, err := s.disciplineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperrors.ErrDisciplineNotFound
	}

	return d, nil
}

// GetAll retrieves all disciplines
func (s *DisciplineService) GetAll(ctx context.Context) ([]*models.Discipline, error) {
	return s.disciplineRepo.GetAll(ctx)
}

// GetForTeacher lists the disciplines a teacher is linked to
func (s *DisciplineService) GetForTeacher(ctx context.Context, teacherID int64) ([]*models.Discipline, error) {
	teacher, err := s.userRepo.GetTeacherByUserID(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("error checking teacher: %w", err)
	}
	if teacher == nil {
		return nil, apperrors.ErrUserNotFound
	}

	return s.disciplineRepo.GetForTeacher(ctx, teacherID)
}

// Update applies a partial discipline update
func (s *DisciplineService) Update(ctx context.Context, id int64, req *dto.UpdateDisciplineRequest) (*models.Discipline, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	d, err := s.disciplineRepo.Update(ctx, id, repositories.DisciplinePatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperrors.ErrDisciplineNotFound
	}

	return d, nil
}

// Delete removes a discipline and its teacher links
func (s *DisciplineService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.disciplineRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrDisciplineNotFound
	}
	return nil
}

// AddTeacher links a teacher to a discipline
func (s *DisciplineService) AddTeacher(ctx context.Context, teacherID, disciplineID int64) (*models.TeacherDisciplineAssociation, error) {
	teacher, err := s.userRepo.GetTeacherByUserID(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("error checking teacher: %w", err)
	}
	if teacher == nil {
		return nil, fmt.Errorf("%w: user %d has no teacher role", apperrors.ErrUserNotFound, teacherID)
	}

	if _, err := s.GetByID(ctx, disciplineID); err != nil {
		return nil, err
	}

	return s.disciplineRepo.AddTeacher(ctx, teacherID, disciplineID)
}

// RemoveTeacher unlinks a teacher from a discipline
func (s *DisciplineService) RemoveTeacher(ctx context.Context, teacherID, disciplineID int64) error {
	removed, err := s.disciplineRepo.RemoveTeacher(ctx, teacherID, disciplineID)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// TeachersFor lists the teachers linked to a discipline
func (s *DisciplineService) TeachersFor(ctx context.Context, disciplineID int64) ([]*models.Teacher, error) {
	if _, err := s.GetByID(ctx, disciplineID); err != nil {
		return nil, err
	}
	return s.disciplineRepo.TeachersFor(ctx, disciplineID)
}
