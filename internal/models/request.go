package models

import "time"

// Request is the database representation of an approvable request.
type Request struct {
	RequestID     string    `db:"request_id"`
	OwnerID       string    `db:"owner_id"`
	ClinicID      string    `db:"clinic_id"`
	RequestType   string    `db:"request_type"`
	Title         string    `db:"title"`
	Notes         string    `db:"notes"`
	Status        string    `db:"status"`
	ApproverID    *string   `db:"approver_id"`
	DecisionNotes string    `db:"decision_notes"`
	RequestDate   time.Time `db:"request_date"`
	AuditFields
}
