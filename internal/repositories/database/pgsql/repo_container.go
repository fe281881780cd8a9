package pgsql

import (
	portsrepo "github.com/fieldforce/sfm_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx-backed repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:      newPgxUserRepository(dbPool),
		RequestRepo:   newPgxRequestRepository(dbPool),
		InvoiceRepo:   newPgxInvoiceRepository(dbPool),
		DebtRepo:      newPgxDebtRepository(dbPool),
		VisitRepo:     newPgxVisitRepository(dbPool),
		AuditRepo:     newPgxAuditRepository(dbPool),
		ReportingRepo: newPgxReportingRepository(dbPool),
	}
}
