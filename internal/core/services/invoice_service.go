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

// InvoiceService implements the invoice business surface, including the
// conversion of an approved invoice into a debt.
type InvoiceService struct {
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	hierarchy   portssvc.HierarchySvc
	guard       approvalGuard
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, userRepo portsrepo.UserReader, hierarchy portssvc.HierarchySvc) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		hierarchy:   hierarchy,
		guard:       approvalGuard{hierarchy: hierarchy, userRepo: userRepo},
	}
}

var _ portssvc.InvoiceSvcFacade = (*InvoiceService)(nil)

// CreateInvoice creates a PENDING invoice owned by the caller. Invoices are
// raised by field staff; top-level roles review them.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: invoice amount must be positive", apperrors.ErrValidation)
	}

	creator, err := s.guard.loadActor(ctx, creatorUserID)
	if err != nil {
		return nil, err
	}
	if creator.Role.IsTopLevel() {
		return nil, fmt.Errorf("%w: top-level roles do not raise invoices", apperrors.ErrForbidden)
	}

	invoiceDate := req.InvoiceDate
	if invoiceDate.IsZero() {
		invoiceDate = now
	}

	invoice := domain.Invoice{
		InvoiceID:   uuid.New().String(),
		OwnerID:     creatorUserID,
		ClinicID:    req.ClinicID,
		Amount:      req.Amount,
		Description: req.Description,
		Status:      domain.StatusPending,
		InvoiceDate: invoiceDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		logger.Error("Failed to save invoice", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	logger.Info("Invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("owner_id", creatorUserID))
	return &invoice, nil
}

// GetInvoiceByID retrieves an invoice, enforcing the caller's visibility scope.
func (s *InvoiceService) GetInvoiceByID(ctx context.Context, invoiceID string, callerUserID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	scope, _, err := s.hierarchy.VisibilityScopeFor(ctx, callerUserID)
	if err != nil {
		return nil, err
	}
	if !scope.Contains(invoice.OwnerID) {
		return nil, fmt.Errorf("%w: invoice is outside the caller's visibility", apperrors.ErrForbidden)
	}
	return invoice, nil
}

// ListInvoices returns the page of invoices inside the caller's scope.
func (s *InvoiceService) ListInvoices(ctx context.Context, callerUserID string, params dto.ListRecordsParams) ([]domain.Invoice, *string, error) {
	scope, _, err := s.hierarchy.VisibilityScopeFor(ctx, callerUserID)
	if err != nil {
		return nil, nil, err
	}
	return s.invoiceRepo.FindInvoices(ctx, toRecordFilter(scope, params))
}

// ApplyAction drives the approval state machine for one invoice. The convert
// action creates the dependent debt in the same transaction as the status
// change.
func (s *InvoiceService) ApplyAction(ctx context.Context, invoiceID string, action string, notes string, actorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	target, err := targetStatusFor(action)
	if err != nil {
		return nil, err
	}
	if target == domain.StatusSettled {
		return nil, fmt.Errorf("%w: action %q does not apply to invoices", apperrors.ErrValidation, action)
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	actor, err := s.guard.loadActor(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.authorizeTransition(ctx, actor, invoice.OwnerID, invoice.Status, target); err != nil {
		return nil, err
	}

	now := time.Now()
	if target == domain.StatusConverted {
		debt := debtFromInvoice(invoice, now)
		if err := s.invoiceRepo.ConvertInvoiceToDebt(ctx, invoiceID, debt, actorUserID, notes, now); err != nil {
			return nil, err
		}
		logger.Info("Invoice converted to debt",
			slog.String("invoice_id", invoiceID),
			slog.String("debt_id", debt.DebtID),
			slog.String("actor_id", actorUserID))
	} else {
		if err := s.invoiceRepo.TransitionInvoiceStatus(ctx, invoiceID, invoice.Status, target, actorUserID, notes, now); err != nil {
			return nil, err
		}
		logger.Info("Invoice transitioned",
			slog.String("invoice_id", invoiceID),
			slog.String("from", string(invoice.Status)),
			slog.String("to", string(target)),
			slog.String("actor_id", actorUserID))
	}

	return s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
}

// debtFromInvoice builds the PENDING debt produced by a conversion. The debt
// keeps the invoice's owner so it stays inside the same visibility subtree.
func debtFromInvoice(invoice *domain.Invoice, now time.Time) domain.Debt {
	sourceID := invoice.InvoiceID
	return domain.Debt{
		DebtID:          uuid.New().String(),
		OwnerID:         invoice.OwnerID,
		ClinicID:        invoice.ClinicID,
		Amount:          invoice.Amount,
		Notes:           invoice.Description,
		Status:          domain.StatusPending,
		SourceInvoiceID: &sourceID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     invoice.OwnerID,
			LastUpdatedAt: now,
			LastUpdatedBy: invoice.OwnerID,
		},
	}
}
