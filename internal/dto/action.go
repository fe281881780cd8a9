package dto

// RecordActionRequest drives the approval state machine on a single record.
// Allowed actions depend on the entity: requests take approve/reject,
// invoices additionally take convert, debts additionally take settle.
type RecordActionRequest struct {
	Action string `json:"action" binding:"required,recordaction"`
	Notes  string `json:"notes"`
}

// Action name constants as accepted on the wire.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionConvert = "convert"
	ActionSettle  = "settle"
)
