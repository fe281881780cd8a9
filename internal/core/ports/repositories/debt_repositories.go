package repositories

import (
	"context"
	"time"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
)

// DebtReader defines read operations for debts.
type DebtReader interface {
	// FindDebtByID retrieves a specific debt by its ID.
	FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error)

	// FindDebts retrieves a page of debts matching the filter, newest first,
	// plus the next-page token.
	FindDebts(ctx context.Context, filter RecordFilter) ([]domain.Debt, *string, error)
}

// DebtWriter defines write operations for debts.
type DebtWriter interface {
	// SaveDebt persists a new debt.
	SaveDebt(ctx context.Context, debt domain.Debt) error

	// TransitionDebtStatus atomically moves a debt between statuses and
	// appends the audit entry; same conditional-update contract as
	// RequestWriter.TransitionRequestStatus.
	TransitionDebtStatus(ctx context.Context, debtID string, fromStatus, toStatus domain.ApprovalStatus, actorID, notes string, at time.Time) error
}

// DebtRepositoryFacade combines all debt-related repository interfaces.
type DebtRepositoryFacade interface {
	DebtReader
	DebtWriter
}
