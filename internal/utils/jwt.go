package utils

import (
	"errors"
	"strconv"
	"time"

	"leasefee/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer     = "leasefee-api"
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

var ErrJWTSecretMissing = errors.New("jwt secret not configured")

// TokenIssuer signs and verifies HS256 tokens for operator sessions.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// GenerateTokens returns an access token carrying permissions and a longer
// lived refresh token that does not.
func (t *TokenIssuer) GenerateTokens(claims *models.UserClaims) (accessToken string, refreshToken string, err error) {
	if len(t.secret) == 0 {
		return "", "", ErrJWTSecretMissing
	}

	now := t.now()

	accessToken, err = t.sign(models.UserClaims{
		RegisteredClaims: registered(claims.UserID, now, accessTokenTTL),
		UserID:           claims.UserID,
		Email:            claims.Email,
		Role:             claims.Role,
		Permissions:      claims.Permissions,
		TokenVersion:     claims.TokenVersion,
	})
	if err != nil {
		return "", "", err
	}

	refreshToken, err = t.sign(models.UserClaims{
		RegisteredClaims: registered(claims.UserID, now, refreshTokenTTL),
		UserID:           claims.UserID,
		Email:            claims.Email,
		Role:             claims.Role,
		TokenVersion:     claims.TokenVersion,
	})
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ParseToken validates the signature and expiry of tokenStr.
func (t *TokenIssuer) ParseToken(tokenStr string) (*models.UserClaims, error) {
	if len(t.secret) == 0 {
		return nil, ErrJWTSecretMissing
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func (t *TokenIssuer) sign(claims models.UserClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func registered(userID uint, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    tokenIssuer,
		Subject:   strconv.FormatUint(uint64(userID), 10),
	}
}
