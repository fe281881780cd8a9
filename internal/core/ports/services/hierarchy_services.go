package services

import (
	"context"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
)

// HierarchySvc resolves the management hierarchy: who reports to whom and,
// from that, who may see and decide which records. All resolution uses the
// current manager chain, never a historical snapshot.
type HierarchySvc interface {
	// VisibilityScopeFor computes the set of record owners the caller may see.
	VisibilityScopeFor(ctx context.Context, callerUserID string) (domain.VisibilityScope, *domain.User, error)

	// ManagerChain walks the direct-manager references from userID upwards and
	// returns the chain of manager IDs, nearest first. A broken chain (missing
	// manager, cycle, excessive depth) fails closed with an error.
	ManagerChain(ctx context.Context, userID string) ([]string, error)

	// CanDecideFor reports whether actor is entitled to decide records owned
	// by ownerID: the actor is top-level, or appears in the owner's current
	// manager chain. Self-decision is never entitled.
	CanDecideFor(ctx context.Context, actor *domain.User, ownerID string) (bool, error)
}
