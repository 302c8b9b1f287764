//go:build testutil
// +build testutil

package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/vmerk/tutorium/internal/app/models"
	"github.com/vmerk/tutorium/internal/app/repositories"
)

func TestSubscriptionLifecycle(t *testing.T) {
	repos := startRepos(t)
	ctx := context.Background()

	student, teacher := createPair(t, repos)

	sub := &models.Subscription{
		TotalLessons: 8,
		StartDate:    time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
		StudentID:    student.ID,
		TeacherID:    teacher.ID,
	}
	if err := repos.Subscriptions.Create(ctx, sub); err != nil {
		t.Fatal(err)
	}
	if sub.ID == 0 {
		t.Fatal("expected an assigned subscription ID")
	}
	if sub.InArchive {
		t.Error("new subscriptions must start unarchived")
	}

	active, err := repos.Subscriptions.GetActive(ctx, student.ID, teacher.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].ID != sub.ID {
		t.Fatalf("unexpected active list: %+v", active)
	}

	newTotal := 12
	updated, err := repos.Subscriptions.Update(ctx, sub.ID, repositories.SubscriptionPatch{TotalLessons: &newTotal})
	if err != nil {
		t.Fatal(err)
	}
	if updated.TotalLessons != 12 {
		t.Errorf("total lessons = %d, want 12", updated.TotalLessons)
	}
	if !updated.EndDate.Equal(sub.EndDate) {
		t.Error("end date must survive a partial update")
	}

	// Archiving is one-way and idempotent.
	for i := 0; i < 2; i++ {
		archived, err := repos.Subscriptions.Archive(ctx, sub.ID)
		if err != nil {
			t.Fatal(err)
		}
		if !archived {
			t.Fatalf("archive attempt %d reported not found", i+1)
		}
	}

	active, err = repos.Subscriptions.GetActive(ctx, student.ID, teacher.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 0 {
		t.Fatalf("archived subscription still listed as active: %+v", active)
	}

	// Archived subscriptions stay in history listings.
	history, err := repos.Subscriptions.GetForStudent(ctx, student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || !history[0].InArchive {
		t.Fatalf("unexpected history: %+v", history)
	}
}
