package repositories

import (
	"time"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
)

// RecordFilter carries the visibility scope and the optional list filters
// shared by every record collection. Date bounds are inclusive.
type RecordFilter struct {
	Scope     domain.VisibilityScope
	Status    *domain.ApprovalStatus
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int
	NextToken *string
}

// RepositoryProvider provides access to all repositories in the application
type RepositoryProvider struct {
	UserRepo      UserRepositoryFacade
	RequestRepo   RequestRepositoryFacade
	InvoiceRepo   InvoiceRepositoryFacade
	DebtRepo      DebtRepositoryFacade
	VisitRepo     VisitRepositoryFacade
	AuditRepo     AuditRepository
	ReportingRepo ReportingRepository
}
