package dto

import (
	"time"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
)

// CreateVisitRequest defines the payload for logging a clinic visit.
type CreateVisitRequest struct {
	ClinicID   string    `json:"clinicID" binding:"required"`
	DoctorName string    `json:"doctorName"`
	VisitDate  time.Time `json:"visitDate" time_format:"2006-01-02"`
	Notes      string    `json:"notes"`
}

// VisitResponse is the public representation of a visit.
type VisitResponse struct {
	VisitID    string    `json:"visitID"`
	OwnerID    string    `json:"ownerID"`
	ClinicID   string    `json:"clinicID"`
	DoctorName string    `json:"doctorName,omitempty"`
	VisitDate  time.Time `json:"visitDate"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToVisitResponse converts a domain.Visit to its public representation.
func ToVisitResponse(v *domain.Visit) VisitResponse {
	return VisitResponse{
		VisitID:    v.VisitID,
		OwnerID:    v.OwnerID,
		ClinicID:   v.ClinicID,
		DoctorName: v.DoctorName,
		VisitDate:  v.VisitDate,
		Notes:      v.Notes,
		CreatedAt:  v.CreatedAt,
	}
}

// ListVisitsResponse wraps a page of visits.
type ListVisitsResponse struct {
	Visits    []VisitResponse `json:"visits"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToListVisitsResponse converts a page of domain visits.
func ToListVisitsResponse(visits []domain.Visit, nextToken *string) ListVisitsResponse {
	responses := make([]VisitResponse, len(visits))
	for i := range visits {
		responses[i] = ToVisitResponse(&visits[i])
	}
	return ListVisitsResponse{Visits: responses, NextToken: nextToken}
}
