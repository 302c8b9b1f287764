package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/vmerk/tutorium/internal/app/models"
	"github.com/vmerk/tutorium/internal/db"
	"github.com/vmerk/tutorium/internal/pkg/apperrors"
	"github.com/vmerk/tutorium/internal/pkg/dberrors"
)

// LessonPatch is the partial-update set for a lesson. Status changes do not go
// through the patch; they use SetStatus or Transition.
type LessonPatch struct {
	LessonDateTime    *time.Time
	Duration          *int
	OnlineCallURL     *string
	SubscriptionID    *int64
	ClearCallURL      bool
	ClearSubscription bool
}

const lessonColumns = `id, lesson_date_time, duration, status, online_call_url, teacher_id, student_id, subscription_id, created_at`

// LessonRepository handles lesson database operations
type LessonRepository struct {
	q db.Querier
}

// NewLessonRepository creates a new LessonRepository
func NewLessonRepository(q db.Querier) *LessonRepository {
	return &LessonRepository{q: q}
}

func scanLesson(row pgx.Row) (*models.Lesson, error) {
	l := &models.Lesson{}
	err := row.Scan(&l.ID, &l.LessonDateTime, &l.Duration, &l.Status,
		&l.OnlineCallURL, &l.TeacherID, &l.StudentID, &l.SubscriptionID, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Create inserts a lesson. When the lesson references a subscription, the
// subscription must belong to the same (student, teacher) pair.
func (r *LessonRepository) Create(ctx context.Context, l *models.Lesson) error {
	if l.Status == "" {
		l.Status = models.LessonScheduled
	}
	if !l.Status.Valid() {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("unknown lesson status: %s", l.Status))
	}

	if l.SubscriptionID != nil {
		if err := r.checkSubscriptionPair(ctx, *l.SubscriptionID, l.StudentID, l.TeacherID); err != nil {
			return err
		}
	}

	err := r.q.QueryRow(ctx, `
		INSERT INTO lessons (lesson_date_time, duration, status, online_call_url, teacher_id, student_id, subscription_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		l.LessonDateTime, l.Duration, l.Status, l.OnlineCallURL,
		l.TeacherID, l.StudentID, l.SubscriptionID,
	).Scan(&l.ID, &l.CreatedAt)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConstraintViolation(err)
		}
		return fmt.Errorf("error creating lesson: %w", err)
	}

	return nil
}

// checkSubscriptionPair verifies that the subscription exists and belongs to
// the given (student, teacher) pair.
func (r *LessonRepository) checkSubscriptionPair(ctx context.Context, subscriptionID, studentID, teacherID int64) error {
	var subStudent, subTeacher int64
	err := r.q.QueryRow(ctx,
		`SELECT student_id, teacher_id FROM subscriptions WHERE id = $1`,
		subscriptionID).Scan(&subStudent, &subTeacher)

	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrSubscriptionNotFound
	}
	if err != nil {
		return fmt.Errorf("error checking subscription: %w", err)
	}

	if subStudent != studentID || subTeacher != teacherID {
		return apperrors.ErrSubscriptionMismatch
	}

	return nil
}

// GetByID retrieves a lesson by ID, nil when absent
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*models.Lesson, error) {
	l, err := scanLesson(r.q.QueryRow(ctx,
		`SELECT `+lessonColumns+` FROM lessons WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving lesson: %w", err)
	}

	return l, nil
}

// GetAll retrieves all lessons ordered by start time
func (r *LessonRepository) GetAll(ctx context.Context) ([]*models.Lesson, error) {
	return r.queryLessons(ctx,
		`SELECT `+lessonColumns+` FROM lessons ORDER BY lesson_date_time, id`)
}

// GetForStudent retrieves a student's lessons ordered by start time
func (r *LessonRepository) GetForStudent(ctx context.Context, studentID int64) ([]*models.Lesson, error) {
	return r.queryLessons(ctx, `
		SELECT `+lessonColumns+` FROM lessons
		WHERE student_id = $1
		ORDER BY lesson_date_time, id`, studentID)
}

// GetForTeacher retrieves a teacher's lessons ordered by start time
func (r *LessonRepository) GetForTeacher(ctx context.Context, teacherID int64) ([]*models.Lesson, error) {
	return r.queryLessons(ctx, `
		SELECT `+lessonColumns+` FROM lessons
		WHERE teacher_id = $1
		ORDER BY lesson_date_time, id`, teacherID)
}

// GetBySubscription retrieves the lessons booked against a subscription,
// ordered by start time.
func (r *LessonRepository) GetBySubscription(ctx context.Context, subscriptionID int64) ([]*models.Lesson, error) {
	return r.queryLessons(ctx, `
		SELECT `+lessonColumns+` FROM lessons
		WHERE subscription_id = $1
		ORDER BY lesson_date_time, id`, subscriptionID)
}

// GetUpcoming retrieves a user's next scheduled lessons: status scheduled,
// start time not in the past, soonest first. The role picks which side of the
// lesson the user is on; only student and teacher have lessons.
func (r *LessonRepository) GetUpcoming(ctx context.Context, userID int64, role models.Role, limit int) ([]*models.Lesson, error) {
	var column string
	switch role {
	case models.RoleStudent:
		column = "student_id"
	case models.RoleTeacher:
		column = "teacher_id"
	default:
		return nil, apperrors.ErrInvalidRole
	}

	if limit <= 0 {
		limit = 10
	}

	return r.queryLessons(ctx, `
		SELECT `+lessonColumns+` FROM lessons
		WHERE `+column+` = $1 AND status = $2 AND lesson_date_time >= now()
		ORDER BY lesson_date_time, id
		LIMIT $3`, userID, models.LessonScheduled, limit)
}

func (r *LessonRepository) queryLessons(ctx context.Context, sql string, args ...any) ([]*models.Lesson, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Lesson
	for rows.Next() {
		l := &models.Lesson{}
		if err := rows.Scan(&l.ID, &l.LessonDateTime, &l.Duration, &l.Status,
			&l.OnlineCallURL, &l.TeacherID, &l.StudentID, &l.SubscriptionID, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}

	return out, rows.Err()
}

// Update applies a partial update and returns the updated lesson, nil when the
// id does not exist. Changing the subscription re-checks the (student, teacher)
// pair. The participants and status are immutable here.
func (r *LessonRepository) Update(ctx context.Context, id int64, patch LessonPatch) (*models.Lesson, error) {
	l, err := r.GetByID(ctx, id)
	if err != nil || l == nil {
		return l, err
	}

	if patch.LessonDateTime != nil {
		l.LessonDateTime = *patch.LessonDateTime
	}
	if patch.Duration != nil {
		l.Duration = *patch.Duration
	}
	if patch.OnlineCallURL != nil {
		l.OnlineCallURL = patch.OnlineCallURL
	}
	if patch.ClearCallURL {
		l.OnlineCallURL = nil
	}
	if patch.SubscriptionID != nil {
		if err := r.checkSubscriptionPair(ctx, *patch.SubscriptionID, l.StudentID, l.TeacherID); err != nil {
			return nil, err
		}
		l.SubscriptionID = patch.SubscriptionID
	}
	if patch.ClearSubscription {
		l.SubscriptionID = nil
	}

	_, err = r.q.Exec(ctx, `
		UPDATE lessons
		SET lesson_date_time = $1, duration = $2, online_call_url = $3, subscription_id = $4
		WHERE id = $5`,
		l.LessonDateTime, l.Duration, l.OnlineCallURL, l.SubscriptionID, l.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.NewConstraintViolation(err)
		}
		return nil, fmt.Errorf("error updating lesson: %w", err)
	}

	return l, nil
}

// SetStatus overwrites a lesson's status without lifecycle checks. Corrections
// of already finalized lessons go through here. Returns false when the id does
// not exist.
func (r *LessonRepository) SetStatus(ctx context.Context, id int64, status models.LessonStatus) (bool, error) {
	if !status.Valid() {
		return false, apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("unknown lesson status: %s", status))
	}

	cmdTag, err := r.q.Exec(ctx,
		`UPDATE lessons SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return false, fmt.Errorf("error setting lesson status: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// Transition moves a lesson to a terminal status, enforcing the lifecycle: the
// lesson must currently be scheduled. The guard rides on the UPDATE itself so
// two concurrent transitions cannot both win.
func (r *LessonRepository) Transition(ctx context.Context, id int64, target models.LessonStatus) (*models.Lesson, error) {
	if !models.LessonScheduled.CanTransitionTo(target) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidTransition,
			fmt.Sprintf("cannot transition a lesson to %s", target))
	}

	l, err := scanLesson(r.q.QueryRow(ctx, `
		UPDATE lessons SET status = $1
		WHERE id = $2 AND status = $3
		RETURNING `+lessonColumns,
		target, id, models.LessonScheduled))

	if errors.Is(err, pgx.ErrNoRows) {
		// Either the lesson does not exist or it already left scheduled.
		current, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		if current == nil {
			return nil, apperrors.ErrLessonNotFound
		}
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidTransition,
			fmt.Sprintf("cannot transition a %s lesson to %s", current.Status, target))
	}
	if err != nil {
		return nil, fmt.Errorf("error transitioning lesson: %w", err)
	}

	return l, nil
}

// Delete removes a lesson. Returns false when the id does not exist.
func (r *LessonRepository) Delete(ctx context.Context, id int64) (bool, error) {
	cmdTag, err := r.q.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting lesson: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}
