package mapping

import (
	"github.com/fieldforce/sfm_backend/internal/core/domain"
	"github.com/fieldforce/sfm_backend/internal/models"
)

// ToModelDebt converts a domain.Debt to its database representation.
func ToModelDebt(d domain.Debt) models.Debt {
	return models.Debt{
		DebtID:          d.DebtID,
		OwnerID:         d.OwnerID,
		ClinicID:        d.ClinicID,
		Amount:          d.Amount,
		Notes:           d.Notes,
		Status:          string(d.Status),
		ApproverID:      d.ApproverID,
		DecisionNotes:   d.DecisionNotes,
		SourceInvoiceID: d.SourceInvoiceID,
		DueDate:         d.DueDate,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDebt converts a database debt row to its domain representation.
func ToDomainDebt(m models.Debt) domain.Debt {
	return domain.Debt{
		DebtID:          m.DebtID,
		OwnerID:         m.OwnerID,
		ClinicID:        m.ClinicID,
		Amount:          m.Amount,
		Notes:           m.Notes,
		Status:          domain.ApprovalStatus(m.Status),
		ApproverID:      m.ApproverID,
		DecisionNotes:   m.DecisionNotes,
		SourceInvoiceID: m.SourceInvoiceID,
		DueDate:         m.DueDate,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDebtSlice converts a slice of debt rows.
func ToDomainDebtSlice(ms []models.Debt) []domain.Debt {
	ds := make([]domain.Debt, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDebt(m)
	}
	return ds
}
