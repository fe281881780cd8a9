package models

import (
	"database/sql"
	"time"
)

// User is the database representation of a sales-force user.
type User struct {
	UserID       string         `db:"user_id"`
	Username     string         `db:"username"`
	PasswordHash string         `db:"password_hash"`
	Name         string         `db:"name"`
	Role         string         `db:"role"`
	Line         sql.NullString `db:"line"`
	Area         sql.NullString `db:"area"`
	District     sql.NullString `db:"district"`
	Region       sql.NullString `db:"region"`
	ManagerID    *string        `db:"manager_id"`
	AuditFields
	DeactivatedAt *time.Time `db:"deactivated_at"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
