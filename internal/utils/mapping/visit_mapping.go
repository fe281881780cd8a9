package mapping

import (
	"github.com/fieldforce/sfm_backend/internal/core/domain"
	"github.com/fieldforce/sfm_backend/internal/models"
)

// ToModelVisit converts a domain.Visit to its database representation.
func ToModelVisit(d domain.Visit) models.Visit {
	return models.Visit{
		VisitID:     d.VisitID,
		OwnerID:     d.OwnerID,
		ClinicID:    d.ClinicID,
		DoctorName:  d.DoctorName,
		VisitDate:   d.VisitDate,
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVisit converts a database visit row to its domain representation.
func ToDomainVisit(m models.Visit) domain.Visit {
	return domain.Visit{
		VisitID:     m.VisitID,
		OwnerID:     m.OwnerID,
		ClinicID:    m.ClinicID,
		DoctorName:  m.DoctorName,
		VisitDate:   m.VisitDate,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainVisitSlice converts a slice of visit rows.
func ToDomainVisitSlice(ms []models.Visit) []domain.Visit {
	ds := make([]domain.Visit, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVisit(m)
	}
	return ds
}
