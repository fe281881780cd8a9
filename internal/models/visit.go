package models

import "time"

// Visit is the database representation of a clinic visit.
type Visit struct {
	VisitID    string    `db:"visit_id"`
	OwnerID    string    `db:"owner_id"`
	ClinicID   string    `db:"clinic_id"`
	DoctorName string    `db:"doctor_name"`
	VisitDate  time.Time `db:"visit_date"`
	Notes      string    `db:"notes"`
	AuditFields
}
