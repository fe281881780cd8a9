package services

import (
	"context"
	"time"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
	portsrepo "github.com/fieldforce/sfm_backend/internal/core/ports/repositories"
	portssvc "github.com/fieldforce/sfm_backend/internal/core/ports/services"
)

// ReportingService computes the dashboard aggregates for a caller.
type ReportingService struct {
	reportingRepo portsrepo.ReportingRepository
	hierarchy     portssvc.HierarchySvc
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, hierarchy portssvc.HierarchySvc) *ReportingService {
	return &ReportingService{reportingRepo: reportingRepo, hierarchy: hierarchy}
}

var _ portssvc.ReportingSvc = (*ReportingService)(nil)

// GetDashboard summarises the records inside the caller's visibility scope.
// Visit counts cover the current calendar month.
func (s *ReportingService) GetDashboard(ctx context.Context, callerUserID string) (*domain.DashboardSummary, error) {
	scope, _, err := s.hierarchy.VisibilityScopeFor(ctx, callerUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return s.reportingRepo.GetDashboardSummary(ctx, scope, monthStart)
}
