package dto

import (
	"time"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDebtRequest defines the payload for recording a debt directly.
type CreateDebtRequest struct {
	ClinicID string          `json:"clinicID" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Notes    string          `json:"notes"`
	DueDate  *time.Time      `json:"dueDate" time_format:"2006-01-02"`
}

// DebtResponse is the public representation of a debt.
type DebtResponse struct {
	DebtID          string          `json:"debtID"`
	OwnerID         string          `json:"ownerID"`
	ClinicID        string          `json:"clinicID"`
	Amount          decimal.Decimal `json:"amount"`
	Notes           string          `json:"notes,omitempty"`
	Status          string          `json:"status"`
	ApproverID      *string         `json:"approverID,omitempty"`
	DecisionNotes   string          `json:"decisionNotes,omitempty"`
	SourceInvoiceID *string         `json:"sourceInvoiceID,omitempty"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToDebtResponse converts a domain.Debt to its public representation.
func ToDebtResponse(d *domain.Debt) DebtResponse {
	return DebtResponse{
		DebtID:          d.DebtID,
		OwnerID:         d.OwnerID,
		ClinicID:        d.ClinicID,
		Amount:          d.Amount,
		Notes:           d.Notes,
		Status:          string(d.Status),
		ApproverID:      d.ApproverID,
		DecisionNotes:   d.DecisionNotes,
		SourceInvoiceID: d.SourceInvoiceID,
		DueDate:         d.DueDate,
		CreatedAt:       d.CreatedAt,
	}
}

// ListDebtsResponse wraps a page of debts.
type ListDebtsResponse struct {
	Debts     []DebtResponse `json:"debts"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToListDebtsResponse converts a page of domain debts.
func ToListDebtsResponse(debts []domain.Debt, nextToken *string) ListDebtsResponse {
	responses := make([]DebtResponse, len(debts))
	for i := range debts {
		responses[i] = ToDebtResponse(&debts[i])
	}
	return ListDebtsResponse{Debts: responses, NextToken: nextToken}
}
