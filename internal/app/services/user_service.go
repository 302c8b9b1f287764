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
	"github.com/vmerk/tutorium/internal/pkg/auth"
	"github.com/vmerk/tutorium/internal/pkg/logger"
	"github.com/vmerk/tutorium/internal/pkg/validation"
)

// UserService handles identity and role-record operations
type UserService struct {
	userRepo *repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetUser loads a user with all role records. Missing users surface
// ErrUserNotFound.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: user ID must be positive", apperrors.ErrValidationFailed)
	}

	u, err := s.userRepo.GetWithRoles(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	if u == nil {
		return nil, apperrors.ErrUserNotFound
	}

	return u, nil
}

// GetAllUsers retrieves all user identities
func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving users: %w", err)
	}
	return users, nil
}

// UpdateUser applies a partial identity update
func (s *UserService) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: user ID must be positive", apperrors.ErrValidationFailed)
	}

	patch := repositories.UserPatch{
		FullName:          req.FullName,
		City:              req.City,
		PhoneNumber:       req.PhoneNumber,
		ProfilePictureURL: req.ProfilePictureURL,
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !validation.IsValidEmail(email) {
			return nil, fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
		}
		patch.Email = &email
	}
	if req.PhoneNumber != nil && !validation.IsValidPhone(*req.PhoneNumber) {
		return nil, fmt.Errorf("%w: invalid phone number format", apperrors.ErrValidationFailed)
	}
	if req.Password != nil {
		if err := validatePassword(*req.Password); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		patch.PasswordHash = &hash
	}
	if req.Birthday != nil {
		birthday, err := time.Parse("2006-01-02", *req.Birthday)
		if err != nil {
			return nil, fmt.Errorf("%w: birthday must be YYYY-MM-DD", apperrors.ErrValidationFailed)
		}
		patch.Birthday = &birthday
	}
	if req.Gender != nil {
		gender := models.Gender(*req.Gender)
		patch.Gender = &gender
	}

	u, err := s.userRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.ErrUserNotFound
	}

	return s.userRepo.GetWithRoles(ctx, id)
}

// DeleteUser removes a user. Role records and student-teacher links go with
// it; a user still referenced by subscriptions or lessons cannot be deleted.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: user ID must be positive", apperrors.ErrValidationFailed)
	}

	found, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.ErrUserNotFound
	}

	logger.Info().Int64("userID", id).Msg("User deleted")
	return nil
}

// AddRole attaches an additional role record to an existing user
func (s *UserService) AddRole(ctx context.Context, userID int64, req *dto.AddRoleRequest) (*models.User, error) {
	if !req.Role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch req.Role {
	case models.RoleStudent:
		u.Student = &models.Student{ClassNumber: req.ClassNumber, SchoolName: req.SchoolName}
	case models.RoleTeacher:
		teacher := &models.Teacher{}
		if req.Experience != nil {
			teacher.Experience = *req.Experience
		}
		if req.MainWork != nil {
			teacher.MainWork = *req.MainWork
		}
		u.Teacher = teacher
	case models.RoleParent:
		u.Parent = &models.Parent{WorkName: req.WorkName, WorkPhone: req.WorkPhone}
	case models.RoleAdministrator:
		admin := &models.Administrator{}
		if req.AccessLevel != nil {
			level := models.AccessLevel(*req.AccessLevel)
			admin.AccessLevel = &level
		}
		u.Administrator = admin
	}

	if err := s.userRepo.AddRole(ctx, u, req.Role); err != nil {
		return nil, err
	}

	return u, nil
}

// UpdateStudent updates student role attributes. The user must hold the
// student role.
func (s *UserService) UpdateStudent(ctx context.Context, userID int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.userRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student record: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrUserNotFound
	}

	if req.ClassNumber != nil {
		student.ClassNumber = req.ClassNumber
	}
	if req.SchoolName != nil {
		student.SchoolName = req.SchoolName
	}

	if err := s.userRepo.UpdateStudent(ctx, student); err != nil {
		return nil, fmt.Errorf("error updating student record: %w", err)
	}

	return student, nil
}

// UpdateTeacher updates teacher role attributes. The user must hold the
// teacher role.
func (s *UserService) UpdateTeacher(ctx context.Context, userID int64, req *dto.UpdateTeacherRequest) (*models.Teacher, error) {
	teacher, err := s.userRepo.GetTeacherByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving teacher record: %w", err)
	}
	if teacher == nil {
		return nil, apperrors.ErrUserNotFound
	}

	if req.Experience != nil {
		teacher.Experience = *req.Experience
	}
	if req.MainWork != nil {
		teacher.MainWork = *req.MainWork
	}

	if err := s.userRepo.UpdateTeacher(ctx, teacher); err != nil {
		return nil, fmt.Errorf("error updating teacher record: %w", err)
	}

	return teacher, nil
}
