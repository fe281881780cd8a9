package domain

import "time"

// ApprovalStatus is the lifecycle status of an approvable record.
type ApprovalStatus string

const (
	StatusPending   ApprovalStatus = "PENDING"
	StatusApproved  ApprovalStatus = "APPROVED"
	StatusRejected  ApprovalStatus = "REJECTED"
	StatusConverted ApprovalStatus = "CONVERTED" // Invoice approved and turned into a debt
	StatusSettled   ApprovalStatus = "SETTLED"   // Debt paid off
)

// allowedTransitions is the full edge set of the approval state machine.
// Transitions are one-directional; there is no un-approving.
var allowedTransitions = map[ApprovalStatus][]ApprovalStatus{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusConverted, StatusSettled},
}

// IsValid reports whether the status is a known lifecycle status.
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusConverted, StatusSettled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted from s.
func (s ApprovalStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// CanTransitionTo reports whether the edge s -> target is in the allowed set.
func (s ApprovalStatus) CanTransitionTo(target ApprovalStatus) bool {
	for _, next := range allowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// StatusChange is an immutable audit entry recorded for every successful
// status transition.
type StatusChange struct {
	ChangeID   string         `json:"changeID"`
	RecordID   string         `json:"recordID"`
	RecordType string         `json:"recordType"` // "request", "invoice" or "debt"
	ActorID    string         `json:"actorID"`
	FromStatus ApprovalStatus `json:"fromStatus"`
	ToStatus   ApprovalStatus `json:"toStatus"`
	Notes      string         `json:"notes,omitempty"`
	ChangedAt  time.Time      `json:"changedAt"`
}
