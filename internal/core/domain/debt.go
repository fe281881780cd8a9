package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt is an amount owed by a clinic, either recorded directly by a rep or
// created automatically when an approved invoice is converted.
// A debt follows the same approval lifecycle as other records, with
// APPROVED -> SETTLED as its closing transition.
type Debt struct {
	DebtID          string          `json:"debtID"` // Primary Key (UUID)
	OwnerID         string          `json:"ownerID"`
	ClinicID        string          `json:"clinicID"`
	Amount          decimal.Decimal `json:"amount"`
	Notes           string          `json:"notes,omitempty"`
	Status          ApprovalStatus  `json:"status"`
	ApproverID      *string         `json:"approverID,omitempty"`
	DecisionNotes   string          `json:"decisionNotes,omitempty"`
	SourceInvoiceID *string         `json:"sourceInvoiceID,omitempty"` // Set when created by conversion
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	AuditFields
}
