package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vmerk/tutorium/internal/app/models"
	"github.com/vmerk/tutorium/internal/app/models/dto"
	"github.com/vmerk/tutorium/internal/app/repositories"
	"github.com/vmerk/tutorium/internal/pkg/apperrors"
)

// BranchService handles office locations and their classrooms
type BranchService struct {
	branchRepo    *repositories.BranchRepository
	classroomRepo *repositories.ClassroomRepository
}

// NewBranchService creates a new BranchService
func NewBranchService(
	branchRepo *repositories.BranchRepository,
	classroomRepo *repositories.ClassroomRepository,
) *BranchService {
	return &BranchService{
		branchRepo:    branchRepo,
		classroomRepo: classroomRepo,
	}
}

// validateWorkingHours checks the HH:MM:SS clock strings and their order
func validateWorkingHours(start, end string) error {
	s, err := time.Parse("15:04:05", start)
	if err != nil {
		return fmt.Errorf("%w: working hours must be HH:MM:SS", apperrors.ErrValidationFailed)
	}
	e, err := time.Parse("15:04:05", end)
	if err != nil {
		return fmt.Errorf("%w: working hours must be HH:MM:SS", apperrors.ErrValidationFailed)
	}
	if !s.Before(e) {
		return fmt.Errorf("%w: working start must be before working end", apperrors.ErrValidationFailed)
	}
	return nil
}

// CreateBranch adds a branch owned by the calling administrator
func (s *BranchService) CreateBranch(ctx context.Context, administratorID int64, req *dto.CreateBranchRequest) (*models.Branch, error) {
	if err := validateWorkingHours(req.WorkingStart, req.WorkingEnd); err != nil {
		return nil, err
	}

	b := &models.Branch{
		Address:         req.Address,
		WorkingStart:    req.WorkingStart,
		WorkingEnd:      req.WorkingEnd,
		Description:     req.Description,
		PhotoURL:        req.PhotoURL,
		AdministratorID: administratorID,
	}

	if err := s.branchRepo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBranch retrieves a branch. Missing ids surface ErrBranchNotFound.
func (s *BranchService) GetBranch(ctx context.Context, id int64) (*models.Branch, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: branch ID must be positive", apperrors.ErrValidationFailed)
	}

	b, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperrors.ErrBranchNotFound
	}

	return b, nil
}

// GetAllBranches retrieves all branches
func (s *BranchService) GetAllBranches(ctx context.Context) ([]*models.Branch, error) {
	return s.branchRepo.GetAll(ctx)
}

// UpdateBranch applies a partial branch update
func (s *BranchService) UpdateBranch(ctx context.Context, id int64, req *dto.UpdateBranchRequest) (*models.Branch, error) {
	if req.WorkingStart != nil || req.WorkingEnd != nil {
		current, err := s.GetBranch(ctx, id)
		if err != nil {
			return nil, err
		}
		start := current.WorkingStart
		end := current.WorkingEnd
		if req.WorkingStart != nil {
			start = *req.WorkingStart
		}
		if req.WorkingEnd != nil {
			end = *req.WorkingEnd
		}
		if err := validateWorkingHours(start, end); err != nil {
			return nil, err
		}
	}

	b, err := s.branchRepo.Update(ctx, id, repositories.BranchPatch{
		Address:      req.Address,
		WorkingStart: req.WorkingStart,
		WorkingEnd:   req.WorkingEnd,
		Description:  req.Description,
		PhotoURL:     req.PhotoURL,
	})
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperrors.ErrBranchNotFound
	}

	return b, nil
}

// DeleteBranch removes a branch together with its classrooms
func (s *BranchService) DeleteBranch(ctx context.Context, id int64) error {
	deleted, err := s.branchRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrBranchNotFound
	}
	return nil
}

// CreateClassroom adds a room inside an existing branch
func (s *BranchService) CreateClassroom(ctx context.Context, administratorID int64, req *dto.CreateClassroomRequest) (*models.Classroom, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	if _, err := s.GetBranch(ctx, req.BranchID); err != nil {
		return nil, err
	}

	c := &models.Classroom{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		BranchID:        req.BranchID,
		AdministratorID: administratorID,
	}

	if err := s.classroomRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// GetClassroom retrieves a classroom. Missing ids surface
// ErrClassroomNotFound.
func (s *BranchService) GetClassroom(ctx context.Context, id int64) (*models.Classroom, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: classroom ID must be positive", apperrors.ErrValidationFailed)
	}

	c, err := s.classroomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperrors.ErrClassroomNotFound
	}

	return c, nil
}

// GetAllClassrooms retrieves all classrooms
func (s *BranchService) GetAllClassrooms(ctx context.Context) ([]*models.Classroom, error) {
	return s.classroomRepo.GetAll(ctx)
}

// GetClassroomsByBranch lists the rooms of a branch
func (s *BranchService) GetClassroomsByBranch(ctx context.Context, branchID int64) ([]*models.Classroom, error) {
	if _, err := s.GetBranch(ctx, branchID); err != nil {
		return nil, err
	}
	return s.classroomRepo.GetByBranch(ctx, branchID)
}

// UpdateClassroom applies a partial classroom update. Moving the room to
// another branch re-checks the target branch.
func (s *BranchService) UpdateClassroom(ctx context.Context, id int64, req *dto.UpdateClassroomRequest) (*models.Classroom, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if req.BranchID != nil {
		if _, err := s.GetBranch(ctx, *req.BranchID); err != nil {
			return nil, err
		}
	}

	c, err := s.classroomRepo.Update(ctx, id, repositories.ClassroomPatch{
		Name:        req.Name,
		Description: req.Description,
		BranchID:    req.BranchID,
	})
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperrors.ErrClassroomNotFound
	}

	return c, nil
}

// DeleteClassroom removes a classroom
func (s *BranchService) DeleteClassroom(ctx context.Context, id int64) error {
	deleted, err := s.classroomRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrClassroomNotFound
	}
	return nil
}
