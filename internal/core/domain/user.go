package domain

import "time"

// User represents an actor in the sales-force hierarchy.
// ManagerID, when set, must reference a user whose role ranks strictly above
// this user's role. Users are never hard-deleted, only deactivated.
type User struct {
	UserID       string  `json:"userID"` // Primary Key (UUID)
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"`
	Name         string  `json:"name"`
	Role         Role    `json:"role"`
	Line         string  `json:"line,omitempty"`     // Product line (e.g., CNS, cardio)
	Area         string  `json:"area,omitempty"`     // Sales area within the line
	District     string  `json:"district,omitempty"` // District within the area
	Region       string  `json:"region,omitempty"`
	ManagerID    *string `json:"managerID,omitempty"` // Direct manager, nil at the top of a chain
	AuditFields
	DeactivatedAt *time.Time `json:"deactivatedAt,omitempty"`

	// Refresh token fields; only the hash of the refresh token is stored.
	RefreshTokenHash       *string    `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// IsActive reports whether the user may authenticate and appear in
// hierarchy resolution.
func (u *User) IsActive() bool {
	return u.DeactivatedAt == nil
}
