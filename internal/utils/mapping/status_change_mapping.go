package mapping

import (
	"github.com/fieldforce/sfm_backend/internal/core/domain"
	"github.com/fieldforce/sfm_backend/internal/models"
)

// ToDomainStatusChange converts an audit row to its domain representation.
func ToDomainStatusChange(m models.StatusChange) domain.StatusChange {
	return domain.StatusChange{
		ChangeID:   m.ChangeID,
		RecordID:   m.RecordID,
		RecordType: m.RecordType,
		ActorID:    m.ActorID,
		FromStatus: domain.ApprovalStatus(m.FromStatus),
		ToStatus:   domain.ApprovalStatus(m.ToStatus),
		Notes:      m.Notes,
		ChangedAt:  m.ChangedAt,
	}
}

// ToDomainStatusChangeSlice converts a slice of audit rows.
func ToDomainStatusChangeSlice(ms []models.StatusChange) []domain.StatusChange {
	ds := make([]domain.StatusChange, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStatusChange(m)
	}
	return ds
}
