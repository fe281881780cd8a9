package domain

import "github.com/shopspring/decimal"

// DashboardSummary aggregates counts over the caller's visibility scope.
type DashboardSummary struct {
	PendingRequests  int             `json:"pendingRequests"`
	ApprovedRequests int             `json:"approvedRequests"`
	PendingInvoices  int             `json:"pendingInvoices"`
	OpenDebtCount    int             `json:"openDebtCount"`
	OpenDebtTotal    decimal.Decimal `json:"openDebtTotal"`
	VisitsThisMonth  int             `json:"visitsThisMonth"`
}
