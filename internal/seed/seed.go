package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	appModels "github.com/mdiallo/gestion-etudiants/internal/app/models"
	appRepos "github.com/mdiallo/gestion-etudiants/internal/app/repositories"
	"github.com/mdiallo/gestion-etudiants/internal/pkg/apperrors"
	pkgAuth "github.com/mdiallo/gestion-etudiants/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// CreateDefaultData creates the default admin account if it doesn't
// exist, so a fresh install can log in immediately.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default admin account...")

	hash, err := pkgAuth.HashPassword("admin123")
	if err != nil {
		return err
	}

	admin := &appModels.User{
		LastName:  "Admin",
		FirstName: "Admin",
		Email:     "admin@ecole.sn",
		Password:  hash,
		Role:      appModels.RoleAdmin,
	}

	if _, err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyUsed) {
			lgr.Debug().Msg("Default admin account already exists")
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default admin account")
		return err
	}

	lgr.Info().Str("email", admin.Email).Msg("Default admin account created")
	return nil
}
