package services

import (
	"context"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
	"github.com/fieldforce/sfm_backend/internal/dto"
)

// InvoiceSvcFacade is the business surface for invoices.
type InvoiceSvcFacade interface {
	// CreateInvoice creates a PENDING invoice owned by the caller.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// GetInvoiceByID retrieves an invoice the caller is entitled to see.
	GetInvoiceByID(ctx context.Context, invoiceID string, callerUserID string) (*domain.Invoice, error)

	// ListInvoices returns the page of invoices inside the caller's
	// visibility scope.
	ListInvoices(ctx context.Context, callerUserID string, params dto.ListRecordsParams) ([]domain.Invoice, *string, error)

	// ApplyAction drives the approval state machine. "convert" performs the
	// APPROVED -> CONVERTED transition and atomically creates the debt.
	ApplyAction(ctx context.Context, invoiceID string, action string, notes string, actorUserID string) (*domain.Invoice, error)
}
