// Package auth authenticates operator accounts and manages their session tokens.
package auth

import (
	"errors"
	"time"

	apperrors "leasefee/internal/errors"
	"leasefee/internal/models"
	"leasefee/internal/repositories"
	"leasefee/internal/utils"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Login(email, password string) (*models.User, string, string, error)
	RefreshTokens(refreshToken string) (string, string, error)
	Logout(userID uint) error
	ParseToken(token string) (*models.UserClaims, error)
	GetUserTokenVersion(userID uint) (int, error)
}

type service struct {
	userRepo repositories.UserRepository
	tokens   *utils.TokenIssuer
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(userRepo repositories.UserRepository, tokens *utils.TokenIssuer, log zerolog.Logger) Service {
	return &service{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log.With().Str("component", "auth").Logger(),
		now:      time.Now,
	}
}

func (s *service) Login(email, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		s.log.Warn().Str("email", email).Msg("login failed: unknown account")
		return nil, "", "", apperrors.ErrInvalidCredentials
	}

	if user.Status != models.UserStatusActive {
		s.log.Warn().Uint("user_id", user.ID).Str("status", user.Status).Msg("login failed: inactive account")
		return nil, "", "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.log.Warn().Uint("user_id", user.ID).Msg("login failed: incorrect password")
		return nil, "", "", apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.tokens.GenerateTokens(claimsFor(user))
	if err != nil {
		s.log.Error().Err(err).Msg("error generating tokens")
		return nil, "", "", errors.New("error generating tokens")
	}

	now := s.now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		s.log.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to record last login")
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) RefreshTokens(refreshToken string) (string, string, error) {
	claims, err := s.tokens.ParseToken(refreshToken)
	if err != nil {
		return "", "", apperrors.ErrInvalidToken.Wrap(err)
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return "", "", apperrors.ErrInvalidToken.Wrap(err)
	}

	if user.TokenVersion != claims.TokenVersion {
		return "", "", apperrors.ErrInvalidToken.Wrap(errors.New("token version mismatch"))
	}

	return s.tokens.GenerateTokens(claimsFor(user))
}

// Logout invalidates every token issued to the user so far.
func (s *service) Logout(userID uint) error {
	return s.userRepo.IncrementTokenVersion(userID)
}

func (s *service) ParseToken(token string) (*models.UserClaims, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken.Wrap(err)
	}
	return claims, nil
}

func (s *service) GetUserTokenVersion(userID uint) (int, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return 0, err
	}
	if user.Status != models.UserStatusActive {
		return 0, errors.New("user is not active")
	}
	return user.TokenVersion, nil
}

func claimsFor(user *models.User) *models.UserClaims {
	return &models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	}
}
