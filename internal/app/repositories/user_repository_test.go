//go:build testutil
// +build testutil

package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vmerk/tutorium/internal/app/models"
	"github.com/vmerk/tutorium/internal/app/repositories"
	"github.com/vmerk/tutorium/internal/pkg/apperrors"
)

func TestUserLifecycle(t *testing.T) {
	repos := startRepos(t)
	ctx := context.Background()

	u := createUser(t, repos, models.RoleStudent)
	if u.ID == 0 {
		t.Fatal("expected an assigned user ID")
	}
	if len(u.UniqueCode) != 8 {
		t.Fatalf("unique code %q, want 8 characters", u.UniqueCode)
	}

	// Same email again must be rejected.
	dup := &models.User{
		FullName:     "Duplicate",
		Email:        u.Email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Birthday:     time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
		Gender:       models.GenderMale,
		City:         "Moscow",
		PhoneNumber:  "+79160000000",
	}
	if err := repos.Users.CreateUserWithRole(ctx, dup, models.RoleStudent); !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("duplicate email: got %v, want ErrEmailAlreadyExists", err)
	}

	loaded, err := repos.Users.GetWithRoles(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded == nil || loaded.Student == nil {
		t.Fatalf("expected a student role record, got %+v", loaded)
	}
	if loaded.Teacher != nil || loaded.Parent != nil || loaded.Administrator != nil {
		t.Error("unexpected extra role records")
	}

	// Grant a second role, then reject granting it twice.
	u.Teacher = &models.Teacher{Experience: 3, MainWork: "Lyceum 2"}
	if err := repos.Users.AddRole(ctx, u, models.RoleTeacher); err != nil {
		t.Fatal(err)
	}
	if err := repos.Users.AddRole(ctx, u, models.RoleTeacher); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("second grant: got %v, want ErrConflict", err)
	}

	loaded, err = repos.Users.GetWithRoles(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Student == nil || loaded.Teacher == nil {
		t.Fatalf("expected both roles, got %+v", loaded)
	}
	if loaded.Teacher.Experience != 3 {
		t.Errorf("teacher experience = %d, want 3", loaded.Teacher.Experience)
	}

	newName := "Renamed User"
	updated, err := repos.Users.Update(ctx, u.ID, repositories.UserPatch{FullName: &newName})
	if err != nil {
		t.Fatal(err)
	}
	if updated.FullName != newName {
		t.Errorf("full name = %q", updated.FullName)
	}
	if updated.Email != u.Email {
		t.Error("untouched fields must survive a partial update")
	}

	deleted, err := repos.Users.Delete(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !deleted {
		t.Fatal("expected delete to report success")
	}
	deleted, err = repos.Users.Delete(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if deleted {
		t.Fatal("second delete should report not found")
	}

	// Role records go with the user.
	student, err := repos.Users.GetStudentByUserID(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if student != nil {
		t.Error("student role record should be removed with the user")
	}
}

func TestCreateUserRejectsMalformedUniqueCode(t *testing.T) {
	repos := startRepos(t)
	ctx := context.Background()

	u := &models.User{
		FullName:     "Code Checked",
		Email:        "code.checked@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Birthday:     time.Date(2005, time.September, 1, 0, 0, 0, 0, time.UTC),
		Gender:       models.GenderMale,
		City:         "Moscow",
		PhoneNumber:  "+79150000000",
		UniqueCode:   "bad!code",
	}
	if err := repos.Users.CreateUserWithRole(ctx, u, models.RoleStudent); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("malformed unique code: got %v, want ErrValidationFailed", err)
	}

	u.UniqueCode = "AB12CD34"
	if err := repos.Users.CreateUserWithRole(ctx, u, models.RoleStudent); err != nil {
		t.Fatal(err)
	}
	stored, err := repos.Users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.UniqueCode != "AB12CD34" {
		t.Fatalf("unique code %q, want the supplied AB12CD34", stored.UniqueCode)
	}
}

func TestUserLookupAbsent(t *testing.T) {
	repos := startRepos(t)
	ctx := context.Background()

	u, err := repos.Users.GetByID(ctx, 99999)
	if err != nil {
		t.Fatal(err)
	}
	if u != nil {
		t.Fatalf("expected nil for an absent user, got %+v", u)
	}

	exists, err := repos.Users.EmailExists(ctx, "nobody@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("unexpected email hit")
	}
}

func TestRefreshTokenLifecycle(t *testing.T) {
	repos := startRepos(t)
	ctx := context.Background()

	u := createUser(t, repos, models.RoleStudent)

	if err := repos.Tokens.CreateToken(ctx, "tok-1", u.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	userID, err := repos.Tokens.GetTokenUser(ctx, "tok-1")
	if err != nil {
		t.Fatal(err)
	}
	if userID != u.ID {
		t.Fatalf("token resolved to user %d, want %d", userID, u.ID)
	}

	if _, err := repos.Tokens.GetTokenUser(ctx, "no-such-token"); !errors.Is(err, apperrors.ErrTokenNotFound) {
		t.Fatalf("unknown token: got %v, want ErrTokenNotFound", err)
	}

	if err := repos.Tokens.RevokeToken(ctx, "tok-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := repos.Tokens.GetTokenUser(ctx, "tok-1"); !errors.Is(err, apperrors.ErrTokenRevoked) {
		t.Fatalf("revoked token: got %v, want ErrTokenRevoked", err)
	}

	if err := repos.Tokens.CreateToken(ctx, "tok-old", u.ID, time.Now().Add(-time.Minute)); err != nil {
		t.Fatal(err)
	}
	if _, err := repos.Tokens.GetTokenUser(ctx, "tok-old"); !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Fatalf("expired token: got %v, want ErrTokenExpired", err)
	}

	if err := repos.Tokens.CreateToken(ctx, "tok-live", u.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	purged, err := repos.Tokens.DeleteExpiredTokens(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if purged < 1 {
		t.Fatalf("purged %d tokens, want at least 1", purged)
	}
	if _, err := repos.Tokens.GetTokenUser(ctx, "tok-old"); !errors.Is(err, apperrors.ErrTokenNotFound) {
		t.Fatalf("purged token: got %v, want ErrTokenNotFound", err)
	}
	if _, err := repos.Tokens.GetTokenUser(ctx, "tok-live"); err != nil {
		t.Fatalf("live token survived purge: got %v", err)
	}
}
