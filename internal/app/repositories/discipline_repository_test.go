//go:build testutil
// +build testutil

package repositories_test

import (
	"context"
	"testing"

	"github.com/vmerk/tutorium/internal/app/models"
	"github.com/vmerk/tutorium/internal/app/repositories"
)

func TestDisciplineTeachers(t *testing.T) {
	repos := startRepos(t)
	ctx := context.Background()

	admin := createUser(t, repos, models.RoleAdministrator)
	teacher := createUser(t, repos, models.RoleTeacher)

	d := &models.Discipline{
		Name:            "Speech therapy",
		Description:     "Individual sessions",
		AdministratorID: admin.ID,
	}
	if err := repos.Disciplines.Create(ctx, d); err != nil {
		t.Fatal(err)
	}
	if d.ID == 0 {
		t.Fatal("expected an assigned discipline ID")
	}

	if _, err := repos.Disciplines.AddTeacher(ctx, teacher.ID, d.ID); err != nil {
		t.Fatal(err)
	}

	has, err := repos.Disciplines.HasTeacher(ctx, teacher.ID, d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !has {
		t.Fatal("expected the teacher to be linked")
	}

	forTeacher, err := repos.Disciplines.GetForTeacher(ctx, teacher.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(forTeacher) != 1 || forTeacher[0].ID != d.ID {
		t.Fatalf("unexpected disciplines for teacher: %+v", forTeacher)
	}

	teachers, err := repos.Disciplines.TeachersFor(ctx, d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(teachers) != 1 || teachers[0].UserID != teacher.ID {
		t.Fatalf("unexpected teachers for discipline: %+v", teachers)
	}

	removed, err := repos.Disciplines.RemoveTeacher(ctx, teacher.ID, d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !removed {
		t.Fatal("expected remove to report success")
	}
	removed, err = repos.Disciplines.RemoveTeacher(ctx, teacher.ID, d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if removed {
		t.Fatal("second remove should report not linked")
	}
}

func TestBranchAndClassroomLifecycle(t *testing.T) {
	repos := startRepos(t)
	ctx := context.Background()

	admin := createUser(t, repos, models.RoleAdministrator)

	address := "Lenina st. 10"
	b := &models.Branch{
		Address:         &address,
		WorkingStart:    "09:00:00",
		WorkingEnd:      "20:00:00",
		AdministratorID: admin.ID,
	}
	if err := repos.Branches.Create(ctx, b); err != nil {
		t.Fatal(err)
	}

	loaded, err := repos.Branches.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.WorkingStart != "09:00:00" || loaded.WorkingEnd != "20:00:00" {
		t.Fatalf("working hours round-trip failed: %+v", loaded)
	}

	c := &models.Classroom{
		Name:            "Room 3",
		BranchID:        b.ID,
		AdministratorID: admin.ID,
	}
	if err := repos.Classrooms.Create(ctx, c); err != nil {
		t.Fatal(err)
	}

	inBranch, err := repos.Classrooms.GetByBranch(ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(inBranch) != 1 || inBranch[0].ID != c.ID {
		t.Fatalf("unexpected classrooms: %+v", inBranch)
	}

	newEnd := "21:00:00"
	updated, err := repos.Branches.Update(ctx, b.ID, repositories.BranchPatch{WorkingEnd: &newEnd})
	if err != nil {
		t.Fatal(err)
	}
	if updated.WorkingEnd != "21:00:00" {
		t.Errorf("working end = %q", updated.WorkingEnd)
	}
	if updated.WorkingStart != "09:00:00" {
		t.Error("working start must survive a partial update")
	}

	// Deleting the branch takes its classrooms with it.
	deleted, err := repos.Branches.Delete(ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !deleted {
		t.Fatal("expected delete to report success")
	}
	room, err := repos.Classrooms.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if room != nil {
		t.Fatalf("classroom survived branch deletion: %+v", room)
	}
}
