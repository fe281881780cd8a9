package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldforce/sfm_backend/internal/apperrors"
	"github.com/fieldforce/sfm_backend/internal/core/domain"
	portsrepo "github.com/fieldforce/sfm_backend/internal/core/ports/repositories"
	portssvc "github.com/fieldforce/sfm_backend/internal/core/ports/services"
	"github.com/fieldforce/sfm_backend/internal/dto"
)

// approvalGuard holds the shared validation applied to every state machine
// transition, regardless of the record type behind it. Repositories enforce
// the same from-status atomically; the guard gives callers the right error
// before any write is attempted.
type approvalGuard struct {
	hierarchy portssvc.HierarchySvc
	userRepo  portsrepo.UserReader
}

// loadActor resolves the acting user and rejects inactive accounts.
func (g *approvalGuard) loadActor(ctx context.Context, actorUserID string) (*domain.User, error) {
	actor, err := g.userRepo.FindUserByID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to load acting user: %w", err)
	}
	if !actor.IsActive() {
		return nil, fmt.Errorf("%w: account is deactivated", apperrors.ErrForbidden)
	}
	return actor, nil
}

// actionTargets maps wire action names to target statuses.
var actionTargets = map[string]domain.ApprovalStatus{
	dto.ActionApprove: domain.StatusApproved,
	dto.ActionReject:  domain.StatusRejected,
	dto.ActionConvert: domain.StatusConverted,
	dto.ActionSettle:  domain.StatusSettled,
}

// targetStatusFor resolves a wire action name to the status it requests.
func targetStatusFor(action string) (domain.ApprovalStatus, error) {
	target, ok := actionTargets[action]
	if !ok {
		return "", fmt.Errorf("%w: unknown action %q", apperrors.ErrValidation, action)
	}
	return target, nil
}

// authorizeTransition validates a requested transition in guard order:
// self-decision is Forbidden before anything else, then entitlement, then
// the state machine edge itself.
func (g *approvalGuard) authorizeTransition(ctx context.Context, actor *domain.User, ownerID string, from, to domain.ApprovalStatus) error {
	if actor.UserID == ownerID {
		return fmt.Errorf("%w: records cannot be decided by their owner", apperrors.ErrForbidden)
	}

	entitled, err := g.hierarchy.CanDecideFor(ctx, actor, ownerID)
	if err != nil {
		return fmt.Errorf("failed to check decision entitlement: %w", err)
	}
	if !entitled {
		return fmt.Errorf("%w: actor is not in the owner's manager chain", apperrors.ErrForbidden)
	}

	if !from.CanTransitionTo(to) {
		if from.IsTerminal() {
			return fmt.Errorf("%w: record is already in terminal status %s", apperrors.ErrInvalidTransition, from)
		}
		return fmt.Errorf("%w: %s -> %s is not an allowed transition", apperrors.ErrInvalidTransition, from, to)
	}

	return nil
}
