package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the database representation of a sales invoice.
type Invoice struct {
	InvoiceID     string          `db:"invoice_id"`
	OwnerID       string          `db:"owner_id"`
	ClinicID      string          `db:"clinic_id"`
	Amount        decimal.Decimal `db:"amount"`
	Description   string          `db:"description"`
	Status        string          `db:"status"`
	ApproverID    *string         `db:"approver_id"`
	DecisionNotes string          `db:"decision_notes"`
	DebtID        *string         `db:"debt_id"`
	InvoiceDate   time.Time       `db:"invoice_date"`
	AuditFields
}
