//go:build testutil
// +build testutil

package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vmerk/tutorium/internal/app/models"
	"github.com/vmerk/tutorium/internal/app/models/dto"
	"github.com/vmerk/tutorium/internal/app/repositories"
	"github.com/vmerk/tutorium/internal/app/services"
	"github.com/vmerk/tutorium/internal/db"
	"github.com/vmerk/tutorium/internal/pkg/apperrors"
	"github.com/vmerk/tutorium/internal/pkg/auth"
	"github.com/vmerk/tutorium/internal/testutil/testdb"
)

func startUserService(t *testing.T) (*services.UserService, *repositories.Repositories) {
	t.Helper()

	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(h.Close)

	repos := repositories.NewRepositories(db.NewFromPool(h.Pool))
	return services.NewUserService(repos.Users), repos
}

func TestUpdateUserChangesPassword(t *testing.T) {
	svc, repos := startUserService(t)
	ctx := context.Background()

	oldHash, err := auth.HashPassword("OldPass123")
	if err != nil {
		t.Fatal(err)
	}
	u := &models.User{
		FullName:     "Anna Petrova",
		Email:        "anna.update@example.com",
		PasswordHash: oldHash,
		Birthday:     time.Date(1995, time.March, 10, 0, 0, 0, 0, time.UTC),
		Gender:       models.GenderFemale,
		City:         "Moscow",
		PhoneNumber:  "+79150000000",
	}
	if err := repos.Users.CreateUserWithRole(ctx, u, models.RoleStudent); err != nil {
		t.Fatal(err)
	}

	newPassword := "NewPass456"
	if _, err := svc.UpdateUser(ctx, u.ID, &dto.UpdateUserRequest{Password: &newPassword}); err != nil {
		t.Fatal(err)
	}

	stored, err := repos.Users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.PasswordHash == oldHash {
		t.Fatal("stored hash did not change")
	}
	if stored.PasswordHash == newPassword {
		t.Fatal("password was stored raw")
	}
	if !auth.CheckPassword(stored.PasswordHash, newPassword) {
		t.Error("new password does not verify against the stored hash")
	}
	if auth.CheckPassword(stored.PasswordHash, "OldPass123") {
		t.Error("old password still verifies")
	}

	// Password rules from registration apply to changes too.
	weak := "short"
	if _, err := svc.UpdateUser(ctx, u.ID, &dto.UpdateUserRequest{Password: &weak}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("weak password: got %v, want ErrValidationFailed", err)
	}
	noDigits := "lettersonly"
	if _, err := svc.UpdateUser(ctx, u.ID, &dto.UpdateUserRequest{Password: &noDigits}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("digitless password: got %v, want ErrValidationFailed", err)
	}

	// A rejected password must leave the stored hash untouched.
	after, err := repos.Users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.PasswordHash != stored.PasswordHash {
		t.Error("rejected update modified the stored hash")
	}
}
