package repositories

import (
	"context"
	"time"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
)

// InvoiceReader defines read operations for invoices.
type InvoiceReader interface {
	// FindInvoiceByID retrieves a specific invoice by its ID.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoices retrieves a page of invoices matching the filter, newest
	// first, plus the next-page token.
	FindInvoices(ctx context.Context, filter RecordFilter) ([]domain.Invoice, *string, error)
}

// InvoiceWriter defines write operations for invoices.
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// TransitionInvoiceStatus atomically moves an invoice between statuses and
	// appends the audit entry; same conditional-update contract as
	// RequestWriter.TransitionRequestStatus.
	TransitionInvoiceStatus(ctx context.Context, invoiceID string, fromStatus, toStatus domain.ApprovalStatus, actorID, notes string, at time.Time) error

	// ConvertInvoiceToDebt performs the APPROVED -> CONVERTED transition and
	// inserts the dependent debt in a single transaction: the invoice is never
	// CONVERTED without its debt, nor the reverse.
	ConvertInvoiceToDebt(ctx context.Context, invoiceID string, debt domain.Debt, actorID, notes string, at time.Time) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
