package services

import (
	"context"
	"time"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
	"github.com/fieldforce/sfm_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users visible to the caller:
	// the whole directory for top-level roles, the caller's subtree for
	// managers, only themselves for reps.
	ListUsers(ctx context.Context, callerUserID string, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser provisions a new user. Only admins may assign roles above
	// MEDICAL_REP, and the manager reference must rank strictly above the new
	// user's role.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	// RegisterUser creates a self-service account with the lowest role.
	RegisterUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser updates an existing user.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)

	// UpdateRefreshToken updates the refresh token details for a user.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken clears the refresh token for a user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeactivateUser marks a user as deactivated (soft delete).
	DeactivateUser(ctx context.Context, userID string, requestingUserID string) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with username and password.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
	UserAuthSvc
}
