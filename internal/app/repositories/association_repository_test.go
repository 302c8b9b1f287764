//go:build testutil
// +build testutil

package repositories_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vmerk/tutorium/internal/app/models"
	"github.com/vmerk/tutorium/internal/pkg/apperrors"
)

func TestAssociationCreateAndDelete(t *testing.T) {
	repos := startRepos(t)
	ctx := context.Background()

	student, teacher := createPair(t, repos)

	if _, err := repos.Associations.Create(ctx, student.ID, teacher.ID); !errors.Is(err, apperrors.ErrAssociationExists) {
		t.Fatalf("duplicate link: got %v, want ErrAssociationExists", err)
	}

	// Linking to a user without the teacher role violates the FK.
	parent := createUser(t, repos, models.RoleParent)
	if _, err := repos.Associations.Create(ctx, student.ID, parent.ID); err == nil {
		t.Fatal("linking to a non-teacher should fail")
	}

	teachers, err := repos.Associations.TeachersForStudent(ctx, student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(teachers) != 1 || teachers[0].UserID != teacher.ID {
		t.Fatalf("unexpected teacher list: %+v", teachers)
	}
	if teachers[0].User == nil || teachers[0].User.ID != teacher.ID {
		t.Error("expected the owning user to be loaded")
	}

	deleted, err := repos.Associations.Delete(ctx, student.ID, teacher.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !deleted {
		t.Fatal("expected delete to report success")
	}
	deleted, err = repos.Associations.Delete(ctx, student.ID, teacher.ID)
	if err != nil {
		t.Fatal(err)
	}
	if deleted {
		t.Fatal("second delete should report not linked")
	}
}

func TestAssociationBulkCreateSkipsExisting(t *testing.T) {
	repos := startRepos(t)
	ctx := context.Background()

	s1 := createUser(t, repos, models.RoleStudent)
	s2 := createUser(t, repos, models.RoleStudent)
	t1 := createUser(t, repos, models.RoleTeacher)
	t2 := createUser(t, repos, models.RoleTeacher)

	if _, err := repos.Associations.Create(ctx, s1.ID, t1.ID); err != nil {
		t.Fatal(err)
	}

	created, err := repos.Associations.BulkCreate(ctx,
		[]int64{s1.ID, s2.ID}, []int64{t1.ID, t2.ID})
	if err != nil {
		t.Fatal(err)
	}
	// Cross product is 4, one pair was already linked.
	if len(created) != 3 {
		t.Fatalf("created %d pairs, want 3", len(created))
	}
	for _, p := range created {
		if p.StudentID == s1.ID && p.TeacherID == t1.ID {
			t.Error("pre-existing pair must be skipped, not recreated")
		}
	}

	all, err := repos.Associations.GetAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Fatalf("total links = %d, want 4", len(all))
	}
}
