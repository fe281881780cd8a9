package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt is the database representation of a clinic debt.
type Debt struct {
	DebtID          string          `db:"debt_id"`
	OwnerID         string          `db:"owner_id"`
	ClinicID        string          `db:"clinic_id"`
	Amount          decimal.Decimal `db:"amount"`
	Notes           string          `db:"notes"`
	Status          string          `db:"status"`
	ApproverID      *string         `db:"approver_id"`
	DecisionNotes   string          `db:"decision_notes"`
	SourceInvoiceID *string         `db:"source_invoice_id"`
	DueDate         *time.Time      `db:"due_date"`
	AuditFields
}
