package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	appModels "github.com/vmerk/tutorium/internal/app/models"
	appRepos "github.com/vmerk/tutorium/internal/app/repositories"
	"github.com/vmerk/tutorium/internal/db"
	"github.com/vmerk/tutorium/internal/pkg/apperrors"
	"github.com/vmerk/tutorium/internal/pkg/auth"
)

const defaultAdminEmail = "admin@tutorium.app"

// CreateDefaultData ensures a default administrator exists so a fresh
// deployment can log in and start creating disciplines and branches.
func CreateDefaultData(ctx context.Context, store *db.PostgresDB, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(store)

	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if default administrator exists")
		return err
	}
	if exists {
		lgr.Info().Msg("Default administrator already exists, skipping creation")
		return nil
	}

	lgr.Info().Msg("Creating default administrator...")

	hashedPassword, err := auth.HashPassword("Admin123!")
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default administrator password")
		return err
	}

	accessLevel := appModels.AccessLevelFull
	admin := &appModels.User{
		FullName:     "System Administrator",
		Email:        defaultAdminEmail,
		PasswordHash: hashedPassword,
		Birthday:     time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		Gender:       appModels.GenderMale,
		City:         "Moscow",
		PhoneNumber:  "+70000000000",
		Administrator: &appModels.Administrator{
			AccessLevel: &accessLevel,
		},
	}

	if err := userRepo.CreateUserWithRole(ctx, admin, appModels.RoleAdministrator); err != nil {
		// A concurrent bootstrap may have raced us to the insert.
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Info().Msg("Default administrator already exists, skipping creation")
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default administrator")
		return err
	}

	lgr.Info().Int64("adminID", admin.ID).Msg("Default administrator created")
	return nil
}
