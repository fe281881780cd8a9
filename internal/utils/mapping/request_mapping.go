package mapping

import (
	"github.com/fieldforce/sfm_backend/internal/core/domain"
	"github.com/fieldforce/sfm_backend/internal/models"
)

// ToModelRequest converts a domain.Request to its database representation.
func ToModelRequest(d domain.Request) models.Request {
	return models.Request{
		RequestID:     d.RequestID,
		OwnerID:       d.OwnerID,
		ClinicID:      d.ClinicID,
		RequestType:   string(d.Type),
		Title:         d.Title,
		Notes:         d.Notes,
		Status:        string(d.Status),
		ApproverID:    d.ApproverID,
		DecisionNotes: d.DecisionNotes,
		RequestDate:   d.RequestDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRequest converts a database request row to its domain representation.
func ToDomainRequest(m models.Request) domain.Request {
	return domain.Request{
		RequestID:     m.RequestID,
		OwnerID:       m.OwnerID,
		ClinicID:      m.ClinicID,
		Type:          domain.RequestType(m.RequestType),
		Title:         m.Title,
		Notes:         m.Notes,
		Status:        domain.ApprovalStatus(m.Status),
		ApproverID:    m.ApproverID,
		DecisionNotes: m.DecisionNotes,
		RequestDate:   m.RequestDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainRequestSlice converts a slice of request rows.
func ToDomainRequestSlice(ms []models.Request) []domain.Request {
	ds := make([]domain.Request, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRequest(m)
	}
	return ds
}
