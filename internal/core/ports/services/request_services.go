package services

import (
	"context"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
	"github.com/fieldforce/sfm_backend/internal/dto"
)

// RequestSvcFacade is the business surface for approval requests.
type RequestSvcFacade interface {
	// CreateRequest creates a PENDING request owned by the caller.
	CreateRequest(ctx context.Context, req dto.CreateRequestRequest, creatorUserID string) (*domain.Request, error)

	// GetRequestByID retrieves a request the caller is entitled to see.
	GetRequestByID(ctx context.Context, requestID string, callerUserID string) (*domain.Request, error)

	// ListRequests returns the page of requests inside the caller's
	// visibility scope.
	ListRequests(ctx context.Context, callerUserID string, params dto.ListRecordsParams) ([]domain.Request, *string, error)

	// ApplyAction drives the approval state machine (approve/reject).
	ApplyAction(ctx context.Context, requestID string, action string, notes string, actorUserID string) (*domain.Request, error)

	// GetRequestHistory returns the audit trail for a visible request.
	GetRequestHistory(ctx context.Context, requestID string, callerUserID string) ([]domain.StatusChange, error)
}
