// Command admin_seed creates the first admin account from ADMIN_* environment variables.
package main

import (
	"errors"
	"os"

	"leasefee/internal/config"
	"leasefee/internal/logger"
	"leasefee/internal/models"
	"leasefee/internal/repositories"
	"leasefee/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()
	log := logger.New(config.Logger())

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	adminName := config.GetEnv("ADMIN_NAME", "Administrator")

	if adminEmail == "" || adminPassword == "" {
		log.Fatal().Msg("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	v := validation.New()
	v.Password("ADMIN_PASSWORD", adminPassword)
	if err := v.Err(); err != nil {
		log.Fatal().Err(err).Msg("admin password rejected")
	}

	db, err := repositories.InitDB(repositories.DBConfigFromEnv(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise database")
	}
	defer func() {
		if err := repositories.CloseDB(db); err != nil {
			log.Warn().Err(err).Msg("failed to close database connection")
		}
	}()

	users := repositories.NewUserRepository(db)

	_, err = users.GetByEmail(adminEmail)
	switch {
	case err == nil:
		log.Info().Str("email", adminEmail).Msg("admin user already exists")
		return
	case !errors.Is(err, repositories.ErrUserNotFound):
		log.Fatal().Err(err).Msg("failed to look up admin user")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	admin := &models.User{
		Email:        adminEmail,
		Password:     string(hashedPassword),
		Name:         adminName,
		Role:         models.RoleAdmin,
		Status:       models.UserStatusActive,
		TokenVersion: 1,
	}
	if err := users.Create(admin); err != nil {
		log.Fatal().Err(err).Msg("failed to create admin user")
	}

	log.Info().Str("email", adminEmail).Uint("id", admin.ID).Msg("admin account created")
}
