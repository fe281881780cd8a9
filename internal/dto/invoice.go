package dto

import (
	"time"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest defines the payload for raising an invoice.
type CreateInvoiceRequest struct {
	ClinicID    string          `json:"clinicID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	InvoiceDate time.Time       `json:"invoiceDate" time_format:"2006-01-02"`
}

// InvoiceResponse is the public representation of an invoice.
type InvoiceResponse struct {
	InvoiceID     string          `json:"invoiceID"`
	OwnerID       string          `json:"ownerID"`
	ClinicID      string          `json:"clinicID"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
	Status        string          `json:"status"`
	ApproverID    *string         `json:"approverID,omitempty"`
	DecisionNotes string          `json:"decisionNotes,omitempty"`
	DebtID        *string         `json:"debtID,omitempty"`
	InvoiceDate   time.Time       `json:"invoiceDate"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToInvoiceResponse converts a domain.Invoice to its public representation.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		OwnerID:       inv.OwnerID,
		ClinicID:      inv.ClinicID,
		Amount:        inv.Amount,
		Description:   inv.Description,
		Status:        string(inv.Status),
		ApproverID:    inv.ApproverID,
		DecisionNotes: inv.DecisionNotes,
		DebtID:        inv.DebtID,
		InvoiceDate:   inv.InvoiceDate,
		CreatedAt:     inv.CreatedAt,
	}
}

// ListInvoicesResponse wraps a page of invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToListInvoicesResponse converts a page of domain invoices.
func ToListInvoicesResponse(invoices []domain.Invoice, nextToken *string) ListInvoicesResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return ListInvoicesResponse{Invoices: responses, NextToken: nextToken}
}
