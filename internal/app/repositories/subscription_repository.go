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

// SubscriptionPatch is the partial-update set for a subscription. Archiving is
// not part of the patch; it goes through Archive.
type SubscriptionPatch struct {
	TotalLessons *int
	EndDate      *time.Time
}

const subscriptionColumns = `id, total_lessons, start_date, end_date, in_archive, student_id, teacher_id, created_at`

// SubscriptionRepository handles subscription database operations
type SubscriptionRepository struct {
	q db.Querier
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(q db.Querier) *SubscriptionRepository {
	return &SubscriptionRepository{q: q}
}

func scanSubscription(row pgx.Row) (*models.Subscription, error) {
	s := &models.Subscription{}
	err := row.Scan(&s.ID, &s.TotalLessons, &s.StartDate, &s.EndDate,
		&s.InArchive, &s.StudentID, &s.TeacherID, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a subscription for a (student, teacher) pair
func (r *SubscriptionRepository) Create(ctx context.Context, s *models.Subscription) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO subscriptions (total_lessons, start_date, end_date, in_archive, student_id, teacher_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		s.TotalLessons, s.StartDate, s.EndDate, s.InArchive, s.StudentID, s.TeacherID,
	).Scan(&s.ID, &s.CreatedAt)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConstraintViolation(err)
		}
		return fmt.Errorf("error creating subscription: %w", err)
	}

	return nil
}

// GetByID retrieves a subscription by ID, nil when absent
func (r *SubscriptionRepository) GetByID(ctx context.Context, id int64) (*models.Subscription, error) {
	s, err := scanSubscription(r.q.QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving subscription: %w", err)
	}

	return s, nil
}

// GetAll retrieves all subscriptions, archived included
func (r *SubscriptionRepository) GetAll(ctx context.Context) ([]*models.Subscription, error) {
	return r.querySubscriptions(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions ORDER BY start_date DESC, id DESC`)
}

// GetForStudent retrieves a student's subscriptions, newest first
func (r *SubscriptionRepository) GetForStudent(ctx context.Context, studentID int64) ([]*models.Subscription, error) {
	return r.querySubscriptions(ctx, `
		SELECT `+subscriptionColumns+` FROM subscriptions
		WHERE student_id = $1
		ORDER BY start_date DESC, id DESC`, studentID)
}

// GetForTeacher retrieves a teacher's subscriptions, newest first
func (r *SubscriptionRepository) GetForTeacher(ctx context.Context, teacherID int64) ([]*models.Subscription, error) {
	return r.querySubscriptions(ctx, `
		SELECT `+subscriptionColumns+` FROM subscriptions
		WHERE teacher_id = $1
		ORDER BY start_date DESC, id DESC`, teacherID)
}

// GetActive retrieves the non-archived subscriptions of a (student, teacher)
// pair, newest first.
func (r *SubscriptionRepository) GetActive(ctx context.Context, studentID, teacherID int64) ([]*models.Subscription, error) {
	return r.querySubscriptions(ctx, `
		SELECT `+subscriptionColumns+` FROM subscriptions
		WHERE student_id = $1 AND teacher_id = $2 AND in_archive = false
		ORDER BY start_date DESC, id DESC`, studentID, teacherID)
}

func (r *SubscriptionRepository) querySubscriptions(ctx context.Context, sql string, args ...any) ([]*models.Subscription, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Subscription
	for rows.Next() {
		s := &models.Subscription{}
		if err := rows.Scan(&s.ID, &s.TotalLessons, &s.StartDate, &s.EndDate,
			&s.InArchive, &s.StudentID, &s.TeacherID, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

// Update applies a partial update and returns the updated subscription, nil
// when the id does not exist. The (student, teacher) pair and start date are
// immutable.
func (r *SubscriptionRepository) Update(ctx context.Context, id int64, patch SubscriptionPatch) (*models.Subscription, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil || s == nil {
		return s, err
	}

	if patch.TotalLessons != nil {
		s.TotalLessons = *patch.TotalLessons
	}
	if patch.EndDate != nil {
		s.EndDate = *patch.EndDate
	}

	_, err = r.q.Exec(ctx, `
		UPDATE subscriptions SET total_lessons = $1, end_date = $2 WHERE id = $3`,
		s.TotalLessons, s.EndDate, s.ID)
	if err != nil {
		return nil, fmt.Errorf("error updating subscription: %w", err)
	}

	return s, nil
}

// Archive marks a subscription archived. Archiving is one-way; archiving an
// already archived subscription succeeds without change. Returns false when
// the id does not exist.
func (r *SubscriptionRepository) Archive(ctx context.Context, id int64) (bool, error) {
	cmdTag, err := r.q.Exec(ctx,
		`UPDATE subscriptions SET in_archive = true WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error archiving subscription: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// Delete removes a subscription. Lessons that referenced it keep their row
// with subscription_id cleared. Returns false when the id does not exist.
func (r *SubscriptionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	cmdTag, err := r.q.Exec(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting subscription: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}
