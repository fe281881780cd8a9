package models

import "time"

// StatusChange is the database representation of an approval audit entry.
// Rows are insert-only.
type StatusChange struct {
	ChangeID   string    `db:"change_id"`
	RecordID   string    `db:"record_id"`
	RecordType string    `db:"record_type"`
	ActorID    string    `db:"actor_id"`
	FromStatus string    `db:"from_status"`
	ToStatus   string    `db:"to_status"`
	Notes      string    `db:"notes"`
	ChangedAt  time.Time `db:"changed_at"`
}
