package mapping

import (
	"database/sql"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
	"github.com/fieldforce/sfm_backend/internal/models"
)

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ToModelUser converts a domain.User to its database representation.
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:        d.UserID,
		Username:      d.Username,
		PasswordHash:  d.PasswordHash,
		Name:          d.Name,
		Role:          string(d.Role),
		Line:          nullString(d.Line),
		Area:          nullString(d.Area),
		District:      nullString(d.District),
		Region:        nullString(d.Region),
		ManagerID:     d.ManagerID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
		DeactivatedAt: d.DeactivatedAt,
	}
	if d.RefreshTokenHash != nil {
		m.RefreshTokenHash = sql.NullString{String: *d.RefreshTokenHash, Valid: true}
	}
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	return m
}

// ToDomainUser converts a database user row to its domain representation.
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:        m.UserID,
		Username:      m.Username,
		PasswordHash:  m.PasswordHash,
		Name:          m.Name,
		Role:          domain.Role(m.Role),
		Line:          m.Line.String,
		Area:          m.Area.String,
		District:      m.District.String,
		Region:        m.Region.String,
		ManagerID:     m.ManagerID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
		DeactivatedAt: m.DeactivatedAt,
	}
	if m.RefreshTokenHash.Valid {
		d.RefreshTokenHash = &m.RefreshTokenHash.String
	}
	if m.RefreshTokenExpiryTime.Valid {
		d.RefreshTokenExpiryTime = &m.RefreshTokenExpiryTime.Time
	}
	return d
}

// ToDomainUserSlice converts a slice of user rows.
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
