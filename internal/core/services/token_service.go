package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldforce/sfm_backend/internal/apperrors"
	"github.com/fieldforce/sfm_backend/internal/core/domain"
	portsrepo "github.com/fieldforce/sfm_backend/internal/core/ports/repositories"
	portssvc "github.com/fieldforce/sfm_backend/internal/core/ports/services"
	"github.com/fieldforce/sfm_backend/internal/middleware"
	"github.com/fieldforce/sfm_backend/internal/platform/config"
	"github.com/fieldforce/sfm_backend/internal/utils"
)

// refreshTokenBytes is the raw entropy of a refresh token before hex encoding.
const refreshTokenBytes = 32

// TokenService issues access tokens and rotates refresh tokens. Refresh
// tokens are opaque random strings; only their SHA256 hash is stored on the
// user row, so a leaked database dump cannot be replayed.
type TokenService struct {
	userRepo           portsrepo.UserRepositoryFacade
	jwtSecret          string
	jwtIssuer          string
	jwtExpiry          time.Duration
	refreshTokenExpiry time.Duration
}

// NewTokenService creates a new TokenService from application config.
func NewTokenService(userRepo portsrepo.UserRepositoryFacade, cfg *config.Config) portssvc.TokenSvcFacade {
	return &TokenService{
		userRepo:           userRepo,
		jwtSecret:          cfg.JWTSecret,
		jwtIssuer:          cfg.JWTIssuer,
		jwtExpiry:          cfg.JWTExpiryDuration,
		refreshTokenExpiry: cfg.RefreshTokenExpiryDuration,
	}
}

var _ portssvc.TokenSvcFacade = (*TokenService)(nil)

// GenerateTokenPair issues an access/refresh token pair for the user and
// stores the refresh token hash. The refresh token embeds the user ID so
// rotation can locate the stored hash without a token table.
func (s *TokenService) GenerateTokenPair(ctx context.Context, user *domain.User) (*portssvc.TokenPair, error) {
	accessToken, err := utils.GenerateJWT(user.UserID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := utils.GenerateSecureRandomString(refreshTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiry := time.Now().Add(s.refreshTokenExpiry)
	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken), expiry); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &portssvc.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: joinRefreshToken(user.UserID, refreshToken),
	}, nil
}

// RefreshTokenPair validates a refresh token against the stored hash and
// rotates it.
func (s *TokenService) RefreshTokenPair(ctx context.Context, refreshToken string) (*domain.User, *portssvc.TokenPair, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	userID, rawToken, ok := splitRefreshToken(refreshToken)
	if !ok {
		return nil, nil, apperrors.ErrUnauthenticated
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.ErrUnauthenticated
		}
		return nil, nil, fmt.Errorf("failed to resolve refresh token owner: %w", err)
	}

	if !user.IsActive() || user.RefreshTokenHash == nil || user.RefreshTokenExpiryTime == nil {
		return nil, nil, apperrors.ErrUnauthenticated
	}
	if time.Now().After(*user.RefreshTokenExpiryTime) {
		logger.Warn("Expired refresh token presented", slog.String("user_id", userID))
		return nil, nil, apperrors.ErrUnauthenticated
	}
	if !utils.CompareRefreshTokenHash(rawToken, *user.RefreshTokenHash) {
		logger.Warn("Refresh token hash mismatch", slog.String("user_id", userID))
		return nil, nil, apperrors.ErrUnauthenticated
	}

	pair, err := s.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// RevokeRefreshToken clears the stored refresh token for a user.
func (s *TokenService) RevokeRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

func splitRefreshToken(combined string) (userID, token string, ok bool) {
	for i := 0; i < len(combined); i++ {
		if combined[i] == ':' {
			return combined[:i], combined[i+1:], i > 0 && i < len(combined)-1
		}
	}
	return "", "", false
}

func joinRefreshToken(userID, token string) string {
	return userID + ":" + token
}
