package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	appModels "github.com/mkowalski/coursehub/internal/app/models"
	appRepos "github.com/mkowalski/coursehub/internal/app/repositories"
	"github.com/mkowalski/coursehub/internal/db"
	"github.com/mkowalski/coursehub/internal/pkg/apperrors"
	"github.com/mkowalski/coursehub/internal/pkg/auth"
)

// Default edition names created on first startup.
var defaultEditionNames = []string{
	"2025/2026 Winter",
	"2025/2026 Summer",
}

// CreateDefaultData creates default course editions and a demo instructor
// account if they don't exist. Safe to run on every startup.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	editionRepo := appRepos.NewEditionRepository(database.Pool)
	userRepo := appRepos.NewUserRepository(database.Pool)

	lgr.Info().Msg("Checking/Creating default data (editions, demo instructor)...")
	var finalErr error

	existing, err := editionRepo.GetAllEditions(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error listing editions for seeding")
		return err
	}

	existingNames := make(map[string]bool, len(existing))
	for _, edition := range existing {
		existingNames[edition.Name] = true
	}

	for _, name := range defaultEditionNames {
		if existingNames[name] {
			continue
		}
		if _, err := editionRepo.CreateEdition(ctx, &appModels.CourseEdition{Name: name}); err != nil {
			lgr.Error().Err(err).Str("name", name).Msg("Error creating default edition")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// Demo instructor account for local development
	hashedPassword, err := auth.HashPassword("Instructor123!")
	if err != nil {
		return errors.Join(finalErr, err)
	}

	instructor := &appModels.User{
		Email:     "instructor@coursehub.app",
		Password:  hashedPassword,
		FirstName: "Demo",
		LastName:  "Instructor",
		RoleType:  appModels.RoleInstructor,
		IsActive:  true,
	}
	if _, err := userRepo.CreateUser(ctx, instructor); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating demo instructor")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}
