package domain

import "time"

// RequestType classifies what a rep is asking approval for.
type RequestType string

const (
	RequestTypeActivity RequestType = "ACTIVITY" // Marketing activity (event, sample drop)
	RequestTypeExpense  RequestType = "EXPENSE"
	RequestTypeOrder    RequestType = "ORDER"
)

// Request is an approvable record created by a rep and decided by someone
// strictly above the rep in the management chain (or a top-level role).
// It is owned by its creator until a decision is recorded, and immutable once
// in a terminal status.
type Request struct {
	RequestID     string         `json:"requestID"` // Primary Key (UUID)
	OwnerID       string         `json:"ownerID"`   // Creating user
	ClinicID      string         `json:"clinicID"`  // Subject entity the request concerns
	Type          RequestType    `json:"type"`
	Title         string         `json:"title"`
	Notes         string         `json:"notes,omitempty"`
	Status        ApprovalStatus `json:"status"`
	ApproverID    *string        `json:"approverID,omitempty"` // Set on the first decision
	DecisionNotes string         `json:"decisionNotes,omitempty"`
	RequestDate   time.Time      `json:"requestDate"`
	AuditFields
}
