package repositories

import (
	"context"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
)

// AuditRepository reads the immutable status-change log. Writes happen inside
// the repository transactions that perform the transitions, never directly.
type AuditRepository interface {
	// ListStatusChanges returns the audit trail for one record, oldest first.
	ListStatusChanges(ctx context.Context, recordID string) ([]domain.StatusChange, error)
}
