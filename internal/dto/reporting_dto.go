package dto

import (
	"github.com/fieldforce/sfm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardResponse aggregates counts over the caller's visibility scope.
type DashboardResponse struct {
	PendingRequests  int             `json:"pendingRequests"`
	ApprovedRequests int             `json:"approvedRequests"`
	PendingInvoices  int             `json:"pendingInvoices"`
	OpenDebtCount    int             `json:"openDebtCount"`
	OpenDebtTotal    decimal.Decimal `json:"openDebtTotal"`
	VisitsThisMonth  int             `json:"visitsThisMonth"`
}

// ToDashboardResponse converts the domain summary.
func ToDashboardResponse(s *domain.DashboardSummary) DashboardResponse {
	return DashboardResponse{
		PendingRequests:  s.PendingRequests,
		ApprovedRequests: s.ApprovedRequests,
		PendingInvoices:  s.PendingInvoices,
		OpenDebtCount:    s.OpenDebtCount,
		OpenDebtTotal:    s.OpenDebtTotal,
		VisitsThisMonth:  s.VisitsThisMonth,
	}
}
