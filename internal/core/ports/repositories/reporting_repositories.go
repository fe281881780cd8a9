package repositories

import (
	"context"
	"time"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
)

// ReportingRepository aggregates dashboard counts over a visibility scope.
type ReportingRepository interface {
	// GetDashboardSummary computes record counts within scope. monthStart
	// bounds the visit count (visits on or after it).
	GetDashboardSummary(ctx context.Context, scope domain.VisibilityScope, monthStart time.Time) (*domain.DashboardSummary, error)
}
