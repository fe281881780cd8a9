package services

import (
	"context"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
)

// TokenPair is an access token plus its refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenSvcFacade issues and rotates the application's signed tokens.
type TokenSvcFacade interface {
	// GenerateTokenPair issues an access/refresh token pair for the user and
	// stores the refresh token hash.
	GenerateTokenPair(ctx context.Context, user *domain.User) (*TokenPair, error)

	// RefreshTokenPair validates a refresh token, rotates it, and returns the
	// user together with the new pair. Fails with apperrors.ErrUnauthenticated
	// on an unknown, expired or already-rotated token.
	RefreshTokenPair(ctx context.Context, refreshToken string) (*domain.User, *TokenPair, error)

	// RevokeRefreshToken clears the stored refresh token for a user.
	RevokeRefreshToken(ctx context.Context, userID string) error
}
