package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fieldforce/sfm_backend/internal/apperrors"
	"github.com/fieldforce/sfm_backend/internal/core/domain"
	portsrepo "github.com/fieldforce/sfm_backend/internal/core/ports/repositories"
	portssvc "github.com/fieldforce/sfm_backend/internal/core/ports/services"
	"github.com/fieldforce/sfm_backend/internal/dto"
	"github.com/fieldforce/sfm_backend/internal/middleware"
)

// DebtService implements the debt business surface.
type DebtService struct {
	debtRepo  portsrepo.DebtRepositoryFacade
	hierarchy portssvc.HierarchySvc
	guard     approvalGuard
}

// NewDebtService creates a new DebtService.
func NewDebtService(debtRepo portsrepo.DebtRepositoryFacade, userRepo portsrepo.UserReader, hierarchy portssvc.HierarchySvc) *DebtService {
	return &DebtService{
		debtRepo:  debtRepo,
		hierarchy: hierarchy,
		guard:     approvalGuard{hierarchy: hierarchy, userRepo: userRepo},
	}
}

var _ portssvc.DebtSvcFacade = (*DebtService)(nil)

// CreateDebt creates a PENDING debt owned by the caller. Debts are recorded
// by field staff; top-level roles review them.
func (s *DebtService) CreateDebt(ctx context.Context, req dto.CreateDebtRequest, creatorUserID string) (*domain.Debt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: debt amount must be positive", apperrors.ErrValidation)
	}

	creator, err := s.guard.loadActor(ctx, creatorUserID)
	if err != nil {
		return nil, err
	}
	if creator.Role.IsTopLevel() {
		return nil, fmt.Errorf("%w: top-level roles do not record debts", apperrors.ErrForbidden)
	}

	debt := domain.Debt{
		DebtID:   uuid.New().String(),
		OwnerID:  creatorUserID,
		ClinicID: req.ClinicID,
		Amount:   req.Amount,
		Notes:    req.Notes,
		Status:   domain.StatusPending,
		DueDate:  req.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.debtRepo.SaveDebt(ctx, debt); err != nil {
		logger.Error("Failed to save debt", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save debt: %w", err)
	}

	logger.Info("Debt created", slog.String("debt_id", debt.DebtID), slog.String("owner_id", creatorUserID))
	return &debt, nil
}

// GetDebtByID retrieves a debt, enforcing the caller's visibility scope.
func (s *DebtService) GetDebtByID(ctx context.Context, debtID string, callerUserID string) (*domain.Debt, error) {
	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}

	scope, _, err := s.hierarchy.VisibilityScopeFor(ctx, callerUserID)
	if err != nil {
		return nil, err
	}
	if !scope.Contains(debt.OwnerID) {
		return nil, fmt.Errorf("%w: debt is outside the caller's visibility", apperrors.ErrForbidden)
	}
	return debt, nil
}

// ListDebts returns the page of debts inside the caller's scope.
func (s *DebtService) ListDebts(ctx context.Context, callerUserID string, params dto.ListRecordsParams) ([]domain.Debt, *string, error) {
	scope, _, err := s.hierarchy.VisibilityScopeFor(ctx, callerUserID)
	if err != nil {
		return nil, nil, err
	}
	return s.debtRepo.FindDebts(ctx, toRecordFilter(scope, params))
}

// ApplyAction drives the approval state machine for one debt. Settle closes
// an approved debt; convert never applies here.
func (s *DebtService) ApplyAction(ctx context.Context, debtID string, action string, notes string, actorUserID string) (*domain.Debt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	target, err := targetStatusFor(action)
	if err != nil {
		return nil, err
	}
	if target == domain.StatusConverted {
		return nil, fmt.Errorf("%w: action %q does not apply to debts", apperrors.ErrValidation, action)
	}

	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}

	actor, err := s.guard.loadActor(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.authorizeTransition(ctx, actor, debt.OwnerID, debt.Status, target); err != nil {
		return nil, err
	}

	if err := s.debtRepo.TransitionDebtStatus(ctx, debtID, debt.Status, target, actorUserID, notes, time.Now()); err != nil {
		return nil, err
	}

	logger.Info("Debt transitioned",
		slog.String("debt_id", debtID),
		slog.String("from", string(debt.Status)),
		slog.String("to", string(target)),
		slog.String("actor_id", actorUserID))

	return s.debtRepo.FindDebtByID(ctx, debtID)
}
