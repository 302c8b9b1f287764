//go:build testutil
// +build testutil

package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/vmerk/tutorium/internal/app/models"
	"github.com/vmerk/tutorium/internal/app/repositories"
	"github.com/vmerk/tutorium/internal/db"
	"github.com/vmerk/tutorium/internal/testutil/testdb"
)

// startRepos provisions a throwaway database and a repository container bound
// to it. The container is terminated when the test finishes.
func startRepos(t *testing.T) *repositories.Repositories {
	t.Helper()

	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(h.Close)

	return repositories.NewRepositories(db.NewFromPool(h.Pool))
}

var userSeq int

// createUser inserts a user holding the given role and returns it. Emails are
// generated to stay unique within one database.
func createUser(t *testing.T, repos *repositories.Repositories, role models.Role) *models.User {
	t.Helper()

	userSeq++
	u := &models.User{
		FullName:     fmt.Sprintf("Test User %d", userSeq),
		Email:        fmt.Sprintf("user%d@example.com", userSeq),
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Birthday:     time.Date(2005, time.September, 1, 0, 0, 0, 0, time.UTC),
		Gender:       models.GenderFemale,
		City:         "Moscow",
		PhoneNumber:  "+79150000000",
	}
	switch role {
	case models.RoleTeacher:
		u.Teacher = &models.Teacher{Experience: 5, MainWork: "School #57"}
	case models.RoleAdministrator:
		level := models.AccessLevelFull
		u.Administrator = &models.Administrator{AccessLevel: &level}
	}

	if err := repos.Users.CreateUserWithRole(context.Background(), u, role); err != nil {
		t.Fatal(err)
	}
	return u
}

// createPair inserts a linked student and teacher.
func createPair(t *testing.T, repos *repositories.Repositories) (student, teacher *models.User) {
	t.Helper()

	student = createUser(t, repos, models.RoleStudent)
	teacher = createUser(t, repos, models.RoleTeacher)
	if _, err := repos.Associations.Create(context.Background(), student.ID, teacher.ID); err != nil {
		t.Fatal(err)
	}
	return student, teacher
}
