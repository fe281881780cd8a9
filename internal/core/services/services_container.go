package services

import (
	portsrepo "github.com/fieldforce/sfm_backend/internal/core/ports/repositories"
	portssvc "github.com/fieldforce/sfm_backend/internal/core/ports/services"
	"github.com/fieldforce/sfm_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Hierarchy comes first since every record service depends on it.
	container.Hierarchy = NewHierarchyService(repos.UserRepo)

	container.User = NewUserService(repos.UserRepo, container.Hierarchy)
	container.Token = NewTokenService(repos.UserRepo, cfg)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	container.Request = NewRequestService(repos.RequestRepo, repos.AuditRepo, repos.UserRepo, container.Hierarchy)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.UserRepo, container.Hierarchy)
	container.Debt = NewDebtService(repos.DebtRepo, repos.UserRepo, container.Hierarchy)
	container.Visit = NewVisitService(repos.VisitRepo, repos.UserRepo, container.Hierarchy)
	container.Reporting = NewReportingService(repos.ReportingRepo, container.Hierarchy)

	return container
}
