package dto

import (
	"time"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
)

// CreateRequestRequest defines the payload for creating an approval request.
type CreateRequestRequest struct {
	ClinicID    string    `json:"clinicID" binding:"required"`
	Type        string    `json:"type" binding:"required,oneof=ACTIVITY EXPENSE ORDER"`
	Title       string    `json:"title" binding:"required"`
	Notes       string    `json:"notes"`
	RequestDate time.Time `json:"requestDate" time_format:"2006-01-02"`
}

// RequestResponse is the public representation of a request.
type RequestResponse struct {
	RequestID     string    `json:"requestID"`
	OwnerID       string    `json:"ownerID"`
	ClinicID      string    `json:"clinicID"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	ApproverID    *string   `json:"approverID,omitempty"`
	DecisionNotes string    `json:"decisionNotes,omitempty"`
	RequestDate   time.Time `json:"requestDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToRequestResponse converts a domain.Request to its public representation.
func ToRequestResponse(r *domain.Request) RequestResponse {
	return RequestResponse{
		RequestID:     r.RequestID,
		OwnerID:       r.OwnerID,
		ClinicID:      r.ClinicID,
		Type:          string(r.Type),
		Title:         r.Title,
		Notes:         r.Notes,
		Status:        string(r.Status),
		ApproverID:    r.ApproverID,
		DecisionNotes: r.DecisionNotes,
		RequestDate:   r.RequestDate,
		CreatedAt:     r.CreatedAt,
	}
}

// ListRequestsResponse wraps a page of requests.
type ListRequestsResponse struct {
	Requests  []RequestResponse `json:"requests"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToListRequestsResponse converts a page of domain requests.
func ToListRequestsResponse(requests []domain.Request, nextToken *string) ListRequestsResponse {
	responses := make([]RequestResponse, len(requests))
	for i := range requests {
		responses[i] = ToRequestResponse(&requests[i])
	}
	return ListRequestsResponse{Requests: responses, NextToken: nextToken}
}
