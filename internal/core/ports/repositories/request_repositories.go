package repositories

import (
	"context"
	"time"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
)

// RequestReader defines read operations for approval requests.
type RequestReader interface {
	// FindRequestByID retrieves a specific request by its ID.
	FindRequestByID(ctx context.Context, requestID string) (*domain.Request, error)

	// FindRequests retrieves a page of requests matching the filter, newest
	// first. The second return value is the next-page token, nil on the last
	// page.
	FindRequests(ctx context.Context, filter RecordFilter) ([]domain.Request, *string, error)
}

// RequestWriter defines write operations for approval requests.
type RequestWriter interface {
	// SaveRequest persists a new request.
	SaveRequest(ctx context.Context, request domain.Request) error

	// TransitionRequestStatus atomically moves a request from fromStatus to
	// toStatus and appends the audit entry, in one transaction. The update is
	// conditional on the current status still being fromStatus; if the record
	// exists but the condition fails (e.g. a concurrent decision won),
	// apperrors.ErrInvalidTransition is returned. A missing record yields
	// apperrors.ErrNotFound.
	TransitionRequestStatus(ctx context.Context, requestID string, fromStatus, toStatus domain.ApprovalStatus, actorID, notes string, at time.Time) error
}

// RequestRepositoryFacade combines all request-related repository interfaces.
type RequestRepositoryFacade interface {
	RequestReader
	RequestWriter
}
