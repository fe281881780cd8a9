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
	"github.com/fieldforce/sfm_backend/internal/dto"
	"github.com/fieldforce/sfm_backend/internal/middleware"
	"github.com/fieldforce/sfm_backend/internal/utils"
	"github.com/google/uuid"
)

// UserService handles user provisioning, authentication and lifecycle.
type UserService struct {
	userRepo  portsrepo.UserRepositoryFacade
	hierarchy portssvc.HierarchySvc
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, hierarchy portssvc.HierarchySvc) portssvc.UserSvcFacade {
	return &UserService{userRepo: userRepo, hierarchy: hierarchy}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

// validateManagerReference enforces the hierarchy invariant: a manager
// reference must point at an active user whose role ranks strictly above the
// subject's role.
func (s *UserService) validateManagerReference(ctx context.Context, managerID string, subjectRole domain.Role) error {
	manager, err := s.userRepo.FindUserByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: manager %s not found", apperrors.ErrValidation, managerID)
		}
		return fmt.Errorf("failed to validate manager reference: %w", err)
	}
	if !manager.IsActive() {
		return fmt.Errorf("%w: manager %s is deactivated", apperrors.ErrValidation, managerID)
	}
	if manager.Role.Rank() <= subjectRole.Rank() {
		return fmt.Errorf("%w: manager role %s does not rank above %s", apperrors.ErrValidation, manager.Role, subjectRole)
	}
	return nil
}

// CreateUser provisions a user on behalf of an admin-role actor.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	creator, err := s.userRepo.FindUserByID(ctx, creatorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve creator %s: %w", creatorUserID, err)
	}
	if creator.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins may provision users", apperrors.ErrForbidden)
	}

	role := domain.Role(req.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}
	if req.ManagerID != nil {
		if err := s.validateManagerReference(ctx, *req.ManagerID, role); err != nil {
			return nil, err
		}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         role,
		Line:         req.Line,
		Area:         req.Area,
		District:     req.District,
		Region:       req.Region,
		ManagerID:    req.ManagerID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("username", req.Username), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User created", slog.String("new_user_id", user.UserID), slog.String("role", string(role)))
	return &user, nil
}

// RegisterUser creates a self-service account with the lowest role. The
// requested role and manager are ignored; an admin assigns those later.
func (s *UserService) RegisterUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Username:     req.Username,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         domain.RoleMedicalRep,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to register user", slog.String("username", req.Username), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// AuthenticateUser checks a username/password pair against the store.
func (s *UserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to look up user for authentication: %w", err)
	}
	if !user.IsActive() {
		logger.Warn("Deactivated user attempted login", slog.String("username", username))
		return nil, apperrors.ErrUnauthenticated
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthenticated
	}
	return user, nil
}

// ListUsers lists the directory slice the caller may see: full directory for
// top-level roles, the caller's subtree (including themselves) for managers,
// only the caller for reps.
func (s *UserService) ListUsers(ctx context.Context, callerUserID string, limit, offset int) ([]domain.User, error) {
	scope, _, err := s.hierarchy.VisibilityScopeFor(ctx, callerUserID)
	if err != nil {
		return nil, err
	}

	if scope.Unrestricted {
		return s.userRepo.FindUsers(ctx, limit, offset)
	}

	// Managers get their subtree resolved one user at a time; the subtree is
	// small (a district is a handful of reps). Reps resolve to themselves.
	users := make([]domain.User, 0, len(scope.OwnerIDs))
	for _, id := range scope.OwnerIDs {
		u, err := s.userRepo.FindUserByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load subtree user %s: %w", id, err)
		}
		users = append(users, *u)
	}
	return users, nil
}

// UpdateUser updates a user. Users may rename themselves; all other changes
// require the admin role.
func (s *UserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve requester %s: %w", requestingUserID, err)
	}

	isAdmin := requester.Role == domain.RoleAdmin
	isSelf := requestingUserID == userID
	if !isAdmin && !isSelf {
		return nil, fmt.Errorf("%w: cannot update another user", apperrors.ErrForbidden)
	}

	adminOnlyChange := req.Role != nil || req.ManagerID != nil || req.Line != nil ||
		req.Area != nil || req.District != nil || req.Region != nil
	if adminOnlyChange && !isAdmin {
		return nil, fmt.Errorf("%w: only admins may change role or placement", apperrors.ErrForbidden)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		if !role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, *req.Role)
		}
		user.Role = role
	}
	if req.Line != nil {
		user.Line = *req.Line
	}
	if req.Area != nil {
		user.Area = *req.Area
	}
	if req.District != nil {
		user.District = *req.District
	}
	if req.Region != nil {
		user.Region = *req.Region
	}
	if req.ManagerID != nil {
		if *req.ManagerID == "" {
			user.ManagerID = nil
		} else {
			user.ManagerID = req.ManagerID
		}
	}

	// Re-check the rank invariant whenever the resulting user has a manager;
	// a role change alone can break it.
	if user.ManagerID != nil {
		if err := s.validateManagerReference(ctx, *user.ManagerID, user.Role); err != nil {
			return nil, err
		}
	}

	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// UpdateRefreshToken updates the refresh token details for a user.
func (s *UserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
}

// ClearRefreshToken clears the refresh token for a user.
func (s *UserService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

// DeactivateUser marks a user as deactivated. Accounts are never hard-deleted
// so audit references stay resolvable.
func (s *UserService) DeactivateUser(ctx context.Context, userID string, requestingUserID string) error {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return fmt.Errorf("failed to resolve requester %s: %w", requestingUserID, err)
	}
	if requester.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: only admins may deactivate users", apperrors.ErrForbidden)
	}

	return s.userRepo.MarkUserDeactivated(ctx, userID, time.Now(), requestingUserID)
}
