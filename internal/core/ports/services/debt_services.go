package services

import (
	"context"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
	"github.com/fieldforce/sfm_backend/internal/dto"
)

// DebtSvcFacade is the business surface for debts.
type DebtSvcFacade interface {
	// CreateDebt creates a PENDING debt owned by the caller.
	CreateDebt(ctx context.Context, req dto.CreateDebtRequest, creatorUserID string) (*domain.Debt, error)

	// GetDebtByID retrieves a debt the caller is entitled to see.
	GetDebtByID(ctx context.Context, debtID string, callerUserID string) (*domain.Debt, error)

	// ListDebts returns the page of debts inside the caller's visibility
	// scope.
	ListDebts(ctx context.Context, callerUserID string, params dto.ListRecordsParams) ([]domain.Debt, *string, error)

	// ApplyAction drives the approval state machine (approve/reject/settle).
	ApplyAction(ctx context.Context, debtID string, action string, notes string, actorUserID string) (*domain.Debt, error)
}
