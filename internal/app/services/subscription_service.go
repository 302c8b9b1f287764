package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vmerk/tutorium/internal/app/models"
	"github.com/vmerk/tutorium/internal/app/models/dto"
	"github.com/vmerk/tutorium/internal/app/repositories"
	"github.com/vmerk/tutorium/internal/pkg/apperrors"
	"github.com/vmerk/tutorium/internal/pkg/logger"
)

// SubscriptionService handles lesson packages
type SubscriptionService struct {
	subscriptionRepo *repositories.SubscriptionRepository
	associationRepo  *repositories.AssociationRepository
	userRepo         *repositories.UserRepository
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(
	subscriptionRepo *repositories.SubscriptionRepository,
	associationRepo *repositories.AssociationRepository,
	userRepo *repositories.UserRepository,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		associationRepo:  associationRepo,
		userRepo:         userRepo,
	}
}

// Create adds a subscription for a linked (student, teacher) pair
func (s *SubscriptionService) Create(ctx context.Context, req *dto.CreateSubscriptionRequest) (*models.Subscription, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start date must be YYYY-MM-DD", apperrors.ErrValidationFailed)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end date must be YYYY-MM-DD", apperrors.ErrValidationFailed)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end date must not precede start date", apperrors.ErrValidationFailed)
	}

	assoc, err := s.associationRepo.Get(ctx, req.StudentID, req.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("error checking association: %w", err)
	}
	if assoc == nil {
		return nil, fmt.Errorf("%w: student %d and teacher %d are not linked",
			apperrors.ErrResourceNotFound, req.StudentID, req.TeacherID)
	}

	sub := &models.Subscription{
		TotalLessons: req.TotalLessons,
		StartDate:    startDate,
		EndDate:      endDate,
		StudentID:    req.StudentID,
		TeacherID:    req.TeacherID,
	}

	if err := s.subscriptionRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	logger.Info().Int64("subscriptionID", sub.ID).
		Int64("studentID", sub.StudentID).Int64("teacherID", sub.TeacherID).
		Msg("Subscription created")

	return sub, nil
}

// GetByID retrieves a subscription. Missing ids surface
// ErrSubscriptionNotFound.
func (s *SubscriptionService) GetByID(ctx context.Context, id int64) (*models.Subscription, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: subscription ID must be positive", apperrors.ErrValidationFailed)
	}

	sub, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, apperrors.ErrSubscriptionNotFound
	}

	return sub, nil
}

// GetForStudent lists a student's subscriptions
func (s *SubscriptionService) GetForStudent(ctx context.Context, studentID int64) ([]*models.Subscription, error) {
	return s.subscriptionRepo.GetForStudent(ctx, studentID)
}

// GetForTeacher lists a teacher's subscriptions
func (s *SubscriptionService) GetForTeacher(ctx context.Context, teacherID int64) ([]*models.Subscription, error) {
	return s.subscriptionRepo.GetForTeacher(ctx, teacherID)
}

// GetActive lists the non-archived subscriptions of a (student, teacher) pair
func (s *SubscriptionService) GetActive(ctx context.Context, studentID, teacherID int64) ([]*models.Subscription, error) {
	return s.subscriptionRepo.GetActive(ctx, studentID, teacherID)
}

// Update applies a partial subscription update
func (s *SubscriptionService) Update(ctx context.Context, id int64, req *dto.UpdateSubscriptionRequest) (*models.Subscription, error) {
	patch := repositories.SubscriptionPatch{TotalLessons: req.TotalLessons}

	if req.EndDate != nil {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: end date must be YYYY-MM-DD", apperrors.ErrValidationFailed)
		}
		current, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if endDate.Before(current.StartDate) {
			return nil, fmt.Errorf("%w: end date must not precede start date", apperrors.ErrValidationFailed)
		}
		patch.EndDate = &endDate
	}

	sub, err := s.subscriptionRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, apperrors.ErrSubscriptionNotFound
	}

	return sub, nil
}

// Archive retires a subscription. Only the owning teacher or an administrator
// may archive; archiving twice is a no-op success.
func (s *SubscriptionService) Archive(ctx context.Context, callerID int64, callerIsAdmin bool, id int64) error {
	sub, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !callerIsAdmin && sub.TeacherID != callerID {
		return apperrors.ErrPermissionDenied
	}

	if _, err := s.subscriptionRepo.Archive(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("subscriptionID", id).Int64("callerID", callerID).Msg("Subscription archived")
	return nil
}

// Delete removes a subscription; its lessons survive unlinked
func (s *SubscriptionService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.subscriptionRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrSubscriptionNotFound
	}
	return nil
}
