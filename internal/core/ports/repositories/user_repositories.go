package repositories

import (
	"context"
	"time"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by username, for authentication.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)

	// FindSubordinateIDs returns the IDs of every active user whose current
	// manager chain includes managerID. The result does not include
	// managerID itself.
	FindSubordinateIDs(ctx context.Context, managerID string) ([]string, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateRefreshToken stores the hash and expiry of a user's refresh token.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken removes the stored refresh token for a user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserLifecycleManager defines operations for managing user lifecycle
type UserLifecycleManager interface {
	// MarkUserDeactivated soft-deactivates a user. Users are never hard-deleted.
	MarkUserDeactivated(ctx context.Context, userID string, deactivatedAt time.Time, deactivatedBy string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
}
