package services

import (
	"context"
	"fmt"

	"github.com/vmerk/tutorium/internal/app/models"
	"github.com/vmerk/tutorium/internal/app/models/dto"
	"github.com/vmerk/tutorium/internal/app/repositories"
	"github.com/vmerk/tutorium/internal/pkg/apperrors"
	"github.com/vmerk/tutorium/internal/pkg/logger"
)

// LessonService handles scheduled sessions and their lifecycle
type LessonService struct {
	lessonRepo      *repositories.LessonRepository
	associationRepo *repositories.AssociationRepository
}

// NewLessonService creates a new LessonService
func NewLessonService(
	lessonRepo *repositories.LessonRepository,
	associationRepo *repositories.AssociationRepository,
) *LessonService {
	return &LessonService{
		lessonRepo:      lessonRepo,
		associationRepo: associationRepo,
	}
}

// Create schedules a lesson for a linked (student, teacher) pair
func (s *LessonService) Create(ctx context.Context, req *dto.CreateLessonRequest) (*models.Lesson, error) {
	assoc, err := s.associationRepo.Get(ctx, req.StudentID, req.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("error checking association: %w", err)
	}
	if assoc == nil {
		return nil, fmt.Errorf("%w: student %d and teacher %d are not linked",
			apperrors.ErrResourceNotFound, req.StudentID, req.TeacherID)
	}

	l := &models.Lesson{
		LessonDateTime: req.LessonDateTime,
		Duration:       req.Duration,
		Status:         models.LessonScheduled,
		OnlineCallURL:  req.OnlineCallURL,
		TeacherID:      req.TeacherID,
		StudentID:      req.StudentID,
		SubscriptionID: req.SubscriptionID,
	}

	if err := s.lessonRepo.Create(ctx, l); err != nil {
		return nil, err
	}

	logger.Info().Int64("lessonID", l.ID).
		Int64("studentID", l.StudentID).Int64("teacherID", l.TeacherID).
		Time("at", l.LessonDateTime).Msg("Lesson scheduled")

	return l, nil
}

// GetByID retrieves a lesson. Missing ids surface ErrLessonNotFound.
func (s *LessonService) GetByID(ctx context.Context, id int64) (*models.Lesson, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: lesson ID must be positive", apperrors.ErrValidationFailed)
	}

	l, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, apperrors.ErrLessonNotFound
	}

	return l, nil
}

// GetForStudent lists a student's lessons
func (s *LessonService) GetForStudent(ctx context.Context, studentID int64) ([]*models.Lesson, error) {
	return s.lessonRepo.GetForStudent(ctx, studentID)
}

// GetForTeacher lists a teacher's lessons
func (s *LessonService) GetForTeacher(ctx context.Context, teacherID int64) ([]*models.Lesson, error) {
	return s.lessonRepo.GetForTeacher(ctx, teacherID)
}

// GetBySubscription lists the lessons booked against a subscription
func (s *LessonService) GetBySubscription(ctx context.Context, subscriptionID int64) ([]*models.Lesson, error) {
	return s.lessonRepo.GetBySubscription(ctx, subscriptionID)
}

// GetUpcoming lists a user's next scheduled lessons in the given role
func (s *LessonService) GetUpcoming(ctx context.Context, userID int64, role models.Role, limit int) ([]*models.Lesson, error) {
	return s.lessonRepo.GetUpcoming(ctx, userID, role, limit)
}

// Update applies a partial lesson update
func (s *LessonService) Update(ctx context.Context, id int64, req *dto.UpdateLessonRequest) (*models.Lesson, error) {
	l, err := s.lessonRepo.Update(ctx, id, repositories.LessonPatch{
		LessonDateTime: req.LessonDateTime,
		Duration:       req.Duration,
		OnlineCallURL:  req.OnlineCallURL,
		SubscriptionID: req.SubscriptionID,
	})
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, apperrors.ErrLessonNotFound
	}

	return l, nil
}

// Finalize moves a scheduled lesson into a terminal status
func (s *LessonService) Finalize(ctx context.Context, id int64, target models.LessonStatus) (*models.Lesson, error) {
	l, err := s.lessonRepo.Transition(ctx, id, target)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("lessonID", id).Str("status", string(target)).Msg("Lesson finalized")
	return l, nil
}

// Complete marks a scheduled lesson completed
func (s *LessonService) Complete(ctx context.Context, id int64) (*models.Lesson, error) {
	return s.Finalize(ctx, id, models.LessonCompleted)
}

// Cancel marks a scheduled lesson cancelled in time
func (s *LessonService) Cancel(ctx context.Context, id int64) (*models.Lesson, error) {
	return s.Finalize(ctx, id, models.LessonCancelledInTime)
}

// SetStatus overwrites a lesson's status without lifecycle checks.
// Administrator corrections of finalized lessons go through here.
func (s *LessonService) SetStatus(ctx context.Context, id int64, status models.LessonStatus) (*models.Lesson, error) {
	found, err := s.lessonRepo.SetStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.ErrLessonNotFound
	}

	return s.lessonRepo.GetByID(ctx, id)
}

// Delete removes a lesson
func (s *LessonService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.lessonRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrLessonNotFound
	}
	return nil
}
