package mapping

import (
	"github.com/fieldforce/sfm_backend/internal/core/domain"
	"github.com/fieldforce/sfm_backend/internal/models"
)

// ToModelInvoice converts a domain.Invoice to its database representation.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		OwnerID:       d.OwnerID,
		ClinicID:      d.ClinicID,
		Amount:        d.Amount,
		Description:   d.Description,
		Status:        string(d.Status),
		ApproverID:    d.ApproverID,
		DecisionNotes: d.DecisionNotes,
		DebtID:        d.DebtID,
		InvoiceDate:   d.InvoiceDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a database invoice row to its domain representation.
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		OwnerID:       m.OwnerID,
		ClinicID:      m.ClinicID,
		Amount:        m.Amount,
		Description:   m.Description,
		Status:        domain.ApprovalStatus(m.Status),
		ApproverID:    m.ApproverID,
		DecisionNotes: m.DecisionNotes,
		DebtID:        m.DebtID,
		InvoiceDate:   m.InvoiceDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts a slice of invoice rows.
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}
