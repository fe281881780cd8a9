package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
	portsrepo "github.com/fieldforce/sfm_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetDashboardSummary aggregates the dashboard counts in one round trip.
// Open debts are those still awaiting a decision or approved but not yet
// settled.
func (r *PgxReportingRepository) GetDashboardSummary(ctx context.Context, scope domain.VisibilityScope, monthStart time.Time) (*domain.DashboardSummary, error) {
	// An unrestricted scope skips the owner filter entirely; $1 = NULL keeps
	// the query shape identical for both cases.
	var ownerIDs []string
	if !scope.Unrestricted {
		ownerIDs = scope.OwnerIDs
		if ownerIDs == nil {
			ownerIDs = []string{}
		}
	}

	query := `
        SELECT
            (SELECT COUNT(*) FROM requests WHERE status = 'PENDING' AND ($1::text[] IS NULL OR owner_id = ANY($1))),
            (SELECT COUNT(*) FROM requests WHERE status = 'APPROVED' AND ($1::text[] IS NULL OR owner_id = ANY($1))),
            (SELECT COUNT(*) FROM invoices WHERE status = 'PENDING' AND ($1::text[] IS NULL OR owner_id = ANY($1))),
            (SELECT COUNT(*) FROM debts WHERE status IN ('PENDING', 'APPROVED') AND ($1::text[] IS NULL OR owner_id = ANY($1))),
            (SELECT COALESCE(SUM(amount), 0) FROM debts WHERE status IN ('PENDING', 'APPROVED') AND ($1::text[] IS NULL OR owner_id = ANY($1))),
            (SELECT COUNT(*) FROM visits WHERE visit_date >= $2 AND ($1::text[] IS NULL OR owner_id = ANY($1)));
    `

	var summary domain.DashboardSummary
	var openDebtTotal decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, ownerIDs, monthStart).Scan(
		&summary.PendingRequests,
		&summary.ApprovedRequests,
		&summary.PendingInvoices,
		&summary.OpenDebtCount,
		&openDebtTotal,
		&summary.VisitsThisMonth,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard summary: %w", err)
	}
	summary.OpenDebtTotal = openDebtTotal

	return &summary, nil
}
