package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a sales invoice raised by a rep against a clinic.
// An approved invoice may be converted into a Debt; conversion is atomic with
// the status transition so an invoice is never CONVERTED without its debt.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"` // Primary Key (UUID)
	OwnerID       string          `json:"ownerID"`
	ClinicID      string          `json:"clinicID"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
	Status        ApprovalStatus  `json:"status"`
	ApproverID    *string         `json:"approverID,omitempty"`
	DecisionNotes string          `json:"decisionNotes,omitempty"`
	DebtID        *string         `json:"debtID,omitempty"` // Set when converted
	InvoiceDate   time.Time       `json:"invoiceDate"`
	AuditFields
}
