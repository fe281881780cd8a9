package services

import (
	"context"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
)

// ReportingSvc computes per-caller dashboard aggregates.
type ReportingSvc interface {
	// GetDashboard summarises the records inside the caller's visibility
	// scope.
	GetDashboard(ctx context.Context, callerUserID string) (*domain.DashboardSummary, error)
}
