package domain

import "time"

// Visit is a rep's record of a clinic or pharmacy call.
// Visits carry no approval lifecycle; they are read through the same
// hierarchical visibility rules as every other record.
type Visit struct {
	VisitID    string    `json:"visitID"` // Primary Key (UUID)
	OwnerID    string    `json:"ownerID"` // The visiting rep
	ClinicID   string    `json:"clinicID"`
	DoctorName string    `json:"doctorName,omitempty"`
	VisitDate  time.Time `json:"visitDate"`
	Notes      string    `json:"notes,omitempty"`
	AuditFields
}
