package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fieldforce/sfm_backend/internal/apperrors"
	"github.com/fieldforce/sfm_backend/internal/core/domain"
	portsrepo "github.com/fieldforce/sfm_backend/internal/core/ports/repositories"
	portssvc "github.com/fieldforce/sfm_backend/internal/core/ports/services"
	"github.com/fieldforce/sfm_backend/internal/middleware"
)

// maxChainDepth bounds the manager-chain walk. The org chart is five levels
// deep; anything past this indicates a data cycle.
const maxChainDepth = 32

// HierarchyService resolves management relationships from the user store.
// All resolution uses the current manager chain, never a historical snapshot:
// moving an owner under a new manager immediately moves their records into
// the new manager's visibility and out of the old one's.
type HierarchyService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewHierarchyService creates a new HierarchyService.
func NewHierarchyService(userRepo portsrepo.UserRepositoryFacade) portssvc.HierarchySvc {
	return &HierarchyService{userRepo: userRepo}
}

var _ portssvc.HierarchySvc = (*HierarchyService)(nil)

// VisibilityScopeFor computes the set of record owners the caller may see:
// everything for top-level roles, self plus transitive subordinates for
// managers, self only for reps.
func (s *HierarchyService) VisibilityScopeFor(ctx context.Context, callerUserID string) (domain.VisibilityScope, *domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	caller, err := s.userRepo.FindUserByID(ctx, callerUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.VisibilityScope{}, nil, apperrors.ErrNotFound
		}
		return domain.VisibilityScope{}, nil, fmt.Errorf("failed to resolve caller %s: %w", callerUserID, err)
	}

	if caller.Role.IsTopLevel() {
		return domain.ScopeAll(), caller, nil
	}

	if !caller.Role.IsManagerial() {
		return domain.ScopeOwners(caller.UserID), caller, nil
	}

	subordinateIDs, err := s.userRepo.FindSubordinateIDs(ctx, caller.UserID)
	if err != nil {
		logger.Error("Failed to resolve subordinates", slog.String("manager_id", caller.UserID), slog.String("error", err.Error()))
		return domain.VisibilityScope{}, nil, fmt.Errorf("failed to resolve subordinates of %s: %w", caller.UserID, err)
	}

	ownerIDs := append([]string{caller.UserID}, subordinateIDs...)
	return domain.ScopeOwners(ownerIDs...), caller, nil
}

// ManagerChain walks the direct-manager references from userID upwards,
// nearest manager first. A broken chain fails closed: the walk stops at the
// break, logs a warning, and returns what was resolved so far together with
// the error.
func (s *HierarchyService) ManagerChain(ctx context.Context, userID string) ([]string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	chain := make([]string, 0, 4)
	seen := map[string]bool{userID: true}

	current, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user %s for chain walk: %w", userID, err)
	}

	for current.ManagerID != nil {
		managerID := *current.ManagerID
		if seen[managerID] {
			logger.Warn("Cycle detected in manager chain", slog.String("user_id", userID), slog.String("manager_id", managerID))
			return chain, fmt.Errorf("manager chain of %s contains a cycle at %s", userID, managerID)
		}
		if len(chain) >= maxChainDepth {
			logger.Warn("Manager chain exceeds maximum depth", slog.String("user_id", userID))
			return chain, fmt.Errorf("manager chain of %s exceeds maximum depth", userID)
		}

		manager, err := s.userRepo.FindUserByID(ctx, managerID)
		if err != nil {
			// Orphaned reference: fail closed rather than silently widening
			// or narrowing anyone's entitlements.
			logger.Warn("Broken manager chain", slog.String("user_id", userID), slog.String("missing_manager_id", managerID), slog.String("error", err.Error()))
			return chain, fmt.Errorf("manager chain of %s is broken at %s: %w", userID, managerID, err)
		}

		chain = append(chain, manager.UserID)
		seen[manager.UserID] = true
		current = manager
	}

	return chain, nil
}

// CanDecideFor reports whether actor may decide records owned by ownerID.
// Self-decision is never entitled, for any role.
func (s *HierarchyService) CanDecideFor(ctx context.Context, actor *domain.User, ownerID string) (bool, error) {
	if actor.UserID == ownerID {
		return false, nil
	}
	if actor.Role.IsTopLevel() {
		return true, nil
	}

	chain, err := s.ManagerChain(ctx, ownerID)
	if err != nil {
		// A broken chain denies managerial entitlement; the error has been
		// logged by ManagerChain.
		return false, nil
	}
	for _, managerID := range chain {
		if managerID == actor.UserID {
			return true, nil
		}
	}
	return false, nil
}
