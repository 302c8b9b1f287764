//go:build testutil
// +build testutil

package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vmerk/tutorium/internal/app/models"
	"github.com/vmerk/tutorium/internal/pkg/apperrors"
)

func newLesson(student, teacher *models.User, at time.Time) *models.Lesson {
	return &models.Lesson{
		LessonDateTime: at,
		Duration:       60,
		Status:         models.LessonScheduled,
		StudentID:      student.ID,
		TeacherID:      teacher.ID,
	}
}

func TestLessonSubscriptionPairCheck(t *testing.T) {
	repos := startRepos(t)
	ctx := context.Background()

	student, teacher := createPair(t, repos)
	otherStudent, otherTeacher := createPair(t, repos)

	sub := &models.Subscription{
		TotalLessons: 4,
		StartDate:    time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
		StudentID:    otherStudent.ID,
		TeacherID:    otherTeacher.ID,
	}
	if err := repos.Subscriptions.Create(ctx, sub); err != nil {
		t.Fatal(err)
	}

	// A lesson may only reference a subscription of its own pair.
	l := newLesson(student, teacher, time.Now().Add(24*time.Hour))
	l.SubscriptionID = &sub.ID
	if err := repos.Lessons.Create(ctx, l); !errors.Is(err, apperrors.ErrSubscriptionMismatch) {
		t.Fatalf("mismatched pair: got %v, want ErrSubscriptionMismatch", err)
	}

	missing := sub.ID + 1000
	l.SubscriptionID = &missing
	if err := repos.Lessons.Create(ctx, l); !errors.Is(err, apperrors.ErrSubscriptionNotFound) {
		t.Fatalf("absent subscription: got %v, want ErrSubscriptionNotFound", err)
	}

	l = newLesson(otherStudent, otherTeacher, time.Now().Add(24*time.Hour))
	l.SubscriptionID = &sub.ID
	if err := repos.Lessons.Create(ctx, l); err != nil {
		t.Fatal(err)
	}

	linked, err := repos.Lessons.GetBySubscription(ctx, sub.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(linked) != 1 || linked[0].ID != l.ID {
		t.Fatalf("unexpected linked lessons: %+v", linked)
	}
}

func TestLessonTransitions(t *testing.T) {
	repos := startRepos(t)
	ctx := context.Background()

	student, teacher := createPair(t, repos)

	l := newLesson(student, teacher, time.Now().Add(24*time.Hour))
	if err := repos.Lessons.Create(ctx, l); err != nil {
		t.Fatal(err)
	}
	if l.Status != models.LessonScheduled {
		t.Fatalf("status = %s, want scheduled", l.Status)
	}

	done, err := repos.Lessons.Transition(ctx, l.ID, models.LessonCompleted)
	if err != nil {
		t.Fatal(err)
	}
	if done.Status != models.LessonCompleted {
		t.Fatalf("status = %s, want completed", done.Status)
	}

	// Terminal states have no outgoing transitions.
	if _, err := repos.Lessons.Transition(ctx, l.ID, models.LessonMissed); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("terminal transition: got %v, want ErrInvalidTransition", err)
	}

	if _, err := repos.Lessons.Transition(ctx, l.ID+1000, models.LessonMissed); !errors.Is(err, apperrors.ErrLessonNotFound) {
		t.Fatalf("absent lesson: got %v, want ErrLessonNotFound", err)
	}

	// An administrator correction may set any valid status directly.
	found, err := repos.Lessons.SetStatus(ctx, l.ID, models.LessonScheduled)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("expected the lesson to be found")
	}
	reloaded, err := repos.Lessons.GetByID(ctx, l.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Status != models.LessonScheduled {
		t.Fatalf("status after correction = %s, want scheduled", reloaded.Status)
	}
}

func TestLessonGetUpcoming(t *testing.T) {
	repos := startRepos(t)
	ctx := context.Background()

	student, teacher := createPair(t, repos)

	past := newLesson(student, teacher, time.Now().Add(-24*time.Hour))
	soon := newLesson(student, teacher, time.Now().Add(2*time.Hour))
	later := newLesson(student, teacher, time.Now().Add(48*time.Hour))
	for _, l := range []*models.Lesson{later, past, soon} {
		if err := repos.Lessons.Create(ctx, l); err != nil {
			t.Fatal(err)
		}
	}

	upcoming, err := repos.Lessons.GetUpcoming(ctx, student.ID, models.RoleStudent, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("upcoming = %d lessons, want 2", len(upcoming))
	}
	if upcoming[0].ID != soon.ID || upcoming[1].ID != later.ID {
		t.Fatal("upcoming lessons must be ordered soonest first")
	}

	// Finalized lessons drop out of the upcoming view.
	if _, err := repos.Lessons.Transition(ctx, soon.ID, models.LessonCancelledInTime); err != nil {
		t.Fatal(err)
	}
	upcoming, err = repos.Lessons.GetUpcoming(ctx, student.ID, models.RoleStudent, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(upcoming) != 1 || upcoming[0].ID != later.ID {
		t.Fatalf("unexpected upcoming list: %+v", upcoming)
	}

	if _, err := repos.Lessons.GetUpcoming(ctx, teacher.ID, models.RoleTeacher, 1); err != nil {
		t.Fatal(err)
	}

	if _, err := repos.Lessons.GetUpcoming(ctx, student.ID, models.RoleParent, 10); !errors.Is(err, apperrors.ErrInvalidRole) {
		t.Fatalf("parent view: got %v, want ErrInvalidRole", err)
	}
}
